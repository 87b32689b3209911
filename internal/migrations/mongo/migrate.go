package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityrepo "shiftboard/internal/availability/repository"
	identityrepo "shiftboard/internal/identity/repository"
	locksrepo "shiftboard/internal/locks/repository"
	"shiftboard/internal/migrations/mongo/validators"
	shiftsrepo "shiftboard/internal/shifts/repository"
	"shiftboard/pkg/logger"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	}

	DoctorsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	// The unique key is what turns SetStatus into a single-record upsert.
	ConstraintsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_doctor_date"),
		},
	}

	ShiftsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "shift_role", Value: 1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}}},
	}
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists everything the service reads or writes. Month locks are
// keyed by _id and need no secondary index.
func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		identityrepo.UsersCollection: {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		identityrepo.DoctorsCollection: {
			Indexes:   DoctorsIndexes,
			Validator: validators.DoctorValidator,
		},
		availabilityrepo.CollectionName: {
			Indexes:   ConstraintsIndexes,
			Validator: validators.ConstraintValidator,
		},
		locksrepo.CollectionName: {
			Validator: validators.LockValidator,
		},
		shiftsrepo.CollectionName: {
			Indexes:   ShiftsIndexes,
			Validator: validators.ShiftValidator,
		},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	defs := Collections()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(names))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
