package repository

import (
	"context"
	"fmt"
	identityrepo "shiftboard/internal/identity/repository"
	"shiftboard/pkg/config"
	mongodb "shiftboard/pkg/db/mongo"
	"shiftboard/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Shifts"

// ShiftRepository is read-only. Shifts are written by an external scheduler.
type ShiftRepository interface {
	FindRange(ctx context.Context, start, end string) ([]*model.ShiftView, error)
}

type mongoShiftRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoShiftRepository(cfg *config.Config) ShiftRepository {
	return &mongoShiftRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

// rangePipeline left-joins each shift in [start, end] with its doctor. An
// unassigned shift, or one pointing at a missing doctor, keeps a nil doctor.
func rangePipeline(start, end string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": start, "$lte": end}}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "shift_role", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         identityrepo.DoctorsCollection,
			"localField":   "doctor_id",
			"foreignField": "_id",
			"as":           "doctor",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$doctor", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"date":                1,
			"shift_role":          1,
			"doctor_id":           1,
			"doctor.full_name":    1,
			"doctor.medical_role": 1,
		}}},
	}
}

func (r *mongoShiftRepository) FindRange(ctx context.Context, start, end string) ([]*model.ShiftView, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, rangePipeline(start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer cursor.Close(ctx)

	shifts := []*model.ShiftView{}
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}
