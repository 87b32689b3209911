package repository

import (
	"context"
	"fmt"
	lockserrors "shiftboard/internal/locks/errors"
	"shiftboard/pkg/config"
	mongodb "shiftboard/pkg/db/mongo"
	"shiftboard/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Schedule_locks"

// LockRepository stores one document per month keyed by YYYY-MM-01. Records
// are only ever upserted, never deleted.
type LockRepository interface {
	Get(ctx context.Context, monthStart string) (*model.MonthLock, error)
	Upsert(ctx context.Context, lock *model.MonthLock) error
	FindRange(ctx context.Context, fromMonth, toMonth string) ([]*model.MonthLock, error)
}

type mongoLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	return &mongoLockRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (r *mongoLockRepository) Get(ctx context.Context, monthStart string) (*model.MonthLock, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var lock model.MonthLock
	if err := r.collection.FindOne(ctx, bson.M{"_id": monthStart}).Decode(&lock); err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, fmt.Errorf("%w: %s", lockserrors.ErrLockNotFound, monthStart)
		}
		return nil, fmt.Errorf("failed to find month lock: %w", err)
	}
	return &lock, nil
}

func (r *mongoLockRepository) Upsert(ctx context.Context, lock *model.MonthLock) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_locked":  lock.IsLocked,
		"updated_by": lock.UpdatedBy,
		"updated_at": lock.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": lock.MonthStart}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert month lock: %w", err)
	}
	return nil
}

// FindRange returns explicit records between two month keys inclusive,
// ordered by month.
func (r *mongoLockRepository) FindRange(ctx context.Context, fromMonth, toMonth string) ([]*model.MonthLock, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$gte": fromMonth, "$lte": toMonth}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query month locks: %w", err)
	}
	defer cursor.Close(ctx)

	locks := []*model.MonthLock{}
	if err := cursor.All(ctx, &locks); err != nil {
		return nil, fmt.Errorf("failed to decode month locks: %w", err)
	}
	return locks, nil
}
