package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
)

// UserRepository defines the interface for user-related database operations.
// Deletion is a soft delete: the document stays in the collection with
// is_deleted set, and every read filters deleted accounts out.
type UserRepository interface {
	GetByID(ctx context.Context, userID bson.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Add(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID bson.ObjectID) error
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) GetByID(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": userID, "is_deleted": false})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email, "is_deleted": false})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) Add(ctx context.Context, user *model.User) (*model.User, error) {
	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	result := r.db.Collection(userCollection).FindOneAndReplace(
		ctx,
		bson.M{"_id": user.ID, "is_deleted": false},
		user,
	)

	return result.Err()
}

func (r *userMongoRepository) Delete(ctx context.Context, userID bson.ObjectID) error {
	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}},
	)

	return result.Err()
}
