package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestWithTimeout_DefaultsWhenZero(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > DefaultOperationTimeout {
		t.Errorf("unexpected remaining time %v", remaining)
	}
}

func TestIsNoDocuments(t *testing.T) {
	if !IsNoDocuments(fmt.Errorf("find user: %w", mongo.ErrNoDocuments)) {
		t.Error("expected wrapped ErrNoDocuments to match")
	}
	if IsNoDocuments(errors.New("other")) {
		t.Error("unexpected match")
	}
}

func TestPing_NilClient(t *testing.T) {
	if err := Ping(context.Background(), nil, time.Second); err == nil {
		t.Error("expected error for nil client")
	}
}
