package repository

import (
	"context"
	"fmt"
	identityerrors "shiftboard/internal/identity/errors"
	"shiftboard/pkg/config"
	mongodb "shiftboard/pkg/db/mongo"
	"shiftboard/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollection   = "Users"
	DoctorsCollection = "Doctors"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type DoctorRepository interface {
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	return &mongoUserRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(UsersCollection),
	}
}

// FindByEmail expects email already lower-cased; emails are stored that way.
func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, fmt.Errorf("%w: %s", identityerrors.ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

type mongoDoctorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	return &mongoDoctorRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(DoctorsCollection),
	}
}

func (r *mongoDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doctor model.Doctor
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doctor); err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, fmt.Errorf("%w: %s", identityerrors.ErrDoctorNotFound, id)
		}
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doctor, nil
}
