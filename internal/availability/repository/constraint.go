package repository

import (
	"context"
	"fmt"
	availabilityerrors "shiftboard/internal/availability/errors"
	"shiftboard/pkg/config"
	mongodb "shiftboard/pkg/db/mongo"
	"shiftboard/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Doctor_constraints"

// ConstraintRepository persists non-default statuses only. A unique index on
// (doctor_id, date) keeps one record per key; absence means available.
type ConstraintRepository interface {
	FindRange(ctx context.Context, doctorID, start, end string) ([]*model.AvailabilityConstraint, error)
	Get(ctx context.Context, doctorID, date string) (*model.AvailabilityConstraint, error)
	Upsert(ctx context.Context, c *model.AvailabilityConstraint) error
	Delete(ctx context.Context, doctorID, date string) error
}

type mongoConstraintRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoConstraintRepository(cfg *config.Config) ConstraintRepository {
	return &mongoConstraintRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func keyFilter(doctorID, date string) bson.M {
	return bson.M{"doctor_id": doctorID, "date": date}
}

// FindRange reads [start, end] inclusive. Dates are YYYY-MM-DD strings so
// the lexical filter is the calendar filter.
func (r *mongoConstraintRepository) FindRange(ctx context.Context, doctorID, start, end string) ([]*model.AvailabilityConstraint, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer cursor.Close(ctx)

	constraints := []*model.AvailabilityConstraint{}
	if err := cursor.All(ctx, &constraints); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return constraints, nil
}

func (r *mongoConstraintRepository) Get(ctx context.Context, doctorID, date string) (*model.AvailabilityConstraint, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var c model.AvailabilityConstraint
	if err := r.collection.FindOne(ctx, keyFilter(doctorID, date)).Decode(&c); err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, fmt.Errorf("%w: %s/%s", availabilityerrors.ErrConstraintNotFound, doctorID, date)
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}
	return &c, nil
}

func (r *mongoConstraintRepository) Upsert(ctx context.Context, c *model.AvailabilityConstraint) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     c.Status,
		"updated_at": c.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, keyFilter(c.DoctorID, c.Date), update, opts)
	if mongodb.IsDuplicateKey(err) {
		// Two concurrent upserts of a new key: one inserted, the loser now
		// matches the inserted document.
		_, err = r.collection.UpdateOne(ctx, keyFilter(c.DoctorID, c.Date), update, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

// Delete is a no-op when no record exists.
func (r *mongoConstraintRepository) Delete(ctx context.Context, doctorID, date string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, keyFilter(doctorID, date)); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}
