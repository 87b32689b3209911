//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityrepo "shiftboard/internal/availability/repository"
	identityrepo "shiftboard/internal/identity/repository"
	locksrepo "shiftboard/internal/locks/repository"
	shiftsrepo "shiftboard/internal/shifts/repository"
	"shiftboard/pkg/model"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "shiftboard_test"
	ConnectionTimeout   = 10 * time.Second
)

var ownedCollections = []string{
	identityrepo.UsersCollection,
	identityrepo.DoctorsCollection,
	availabilityrepo.CollectionName,
	locksrepo.CollectionName,
	shiftsrepo.CollectionName,
}

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanDatabase empties the service's collections. Documents are deleted
// rather than collections dropped so validators and indexes survive.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range ownedCollections {
		if _, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", name, err)
		}
	}
}

func (m *MongoHelper) insert(t *testing.T, collection string, doc any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(collection).InsertOne(ctx, doc); err != nil {
		t.Fatalf("failed to insert into %s: %v", collection, err)
	}
}

func (m *MongoHelper) InsertUser(t *testing.T, u model.User) {
	t.Helper()
	m.insert(t, identityrepo.UsersCollection, u)
}

func (m *MongoHelper) InsertDoctor(t *testing.T, d model.Doctor) {
	t.Helper()
	m.insert(t, identityrepo.DoctorsCollection, d)
}

func (m *MongoHelper) InsertShift(t *testing.T, s model.Shift) {
	t.Helper()
	m.insert(t, shiftsrepo.CollectionName, s)
}

func (m *MongoHelper) CountConstraints(t *testing.T, doctorID, date string) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := m.Database.Collection(availabilityrepo.CollectionName).CountDocuments(ctx, bson.M{"doctor_id": doctorID, "date": date})
	if err != nil {
		t.Fatalf("failed to count constraints: %v", err)
	}
	return n
}

func (m *MongoHelper) GetLock(t *testing.T, monthStart string) *model.MonthLock {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var lock model.MonthLock
	err := m.Database.Collection(locksrepo.CollectionName).FindOne(ctx, bson.M{"_id": monthStart}).Decode(&lock)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read lock: %v", err)
	}
	return &lock
}
