//go:build integration

package testutil

import (
	"fmt"
	"os"
	"shiftboard/pkg/client"
	"shiftboard/pkg/middleware"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultHealthCheckTimeout = 30 * time.Second

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	ServerPort   string
	JWTSecret    string
	JWTIssuer    string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", "8080")

	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
		ServerPort:   serverPort,
		JWTSecret:    getEnv("TEST_JWT_SECRET", "integration-test-secret"),
		JWTIssuer:    os.Getenv("TEST_JWT_ISSUER"),
	}
}

// Setup connects to the service's database, empties the collections it
// owns and waits for the service to answer.
func (e *TestEnv) Setup(t *testing.T) *MongoHelper {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	if err := client.NewHttpClient(e.ServerURL).WaitForHealthy(DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("service not healthy: %v", err)
	}
	return mongo
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

// ClientFor returns an API client authenticated as email.
func (e *TestEnv) ClientFor(t *testing.T, email string) *client.ShiftboardClient {
	t.Helper()
	return client.NewShiftboardClient(e.ServerURL, e.Token(t, email))
}

func (e *TestEnv) Token(t *testing.T, email string) string {
	t.Helper()

	claims := middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    e.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
