package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const DefaultOperationTimeout = 5 * time.Second

// WithTimeout bounds a single store round trip. A zero timeout falls back to
// DefaultOperationTimeout.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Ping reports whether the deployment answers within timeout.
func Ping(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return errors.New("mongo client is not configured")
	}
	ctx, cancel := WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(ctx, nil)
}
