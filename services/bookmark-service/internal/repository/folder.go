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

// FolderRepository defines the interface for folder-related database
// operations. Every query is scoped by the owning user id in the filter
// itself, so folders belonging to other users are indistinguishable from
// folders that do not exist.
type FolderRepository interface {
	GetAll(ctx context.Context, userID bson.ObjectID, page Pagination) ([]*model.Folder, error)
	GetByID(ctx context.Context, userID, folderID bson.ObjectID) (*model.Folder, error)
	Add(ctx context.Context, folder *model.Folder) (*model.Folder, error)
	Update(ctx context.Context, folder *model.Folder) error
	Delete(ctx context.Context, folder *model.Folder) error
	CountByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

const folderCollection = "folders"

type folderMongoRepository struct {
	db *mongo.Database
}

func NewFolderMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) FolderRepository {
	collection := db.Collection(folderCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create folder indexes")
	}

	return &folderMongoRepository{db: db}
}

func (r *folderMongoRepository) GetAll(
	ctx context.Context,
	userID bson.ObjectID,
	page Pagination,
) ([]*model.Folder, error) {
	findOptions := options.Find().
		SetLimit(page.limit()).
		SetSkip(page.Offset).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(folderCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	folders := make([]*model.Folder, 0)
	for cursor.Next(ctx) {
		var folder model.Folder
		if err := cursor.Decode(&folder); err != nil {
			return nil, err
		}
		folders = append(folders, &folder)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}

func (r *folderMongoRepository) GetByID(ctx context.Context, userID, folderID bson.ObjectID) (*model.Folder, error) {
	result := r.db.Collection(folderCollection).FindOne(ctx, bson.M{"_id": folderID, "user_id": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var folder model.Folder
	if err := result.Decode(&folder); err != nil {
		return nil, err
	}

	return &folder, nil
}

func (r *folderMongoRepository) Add(ctx context.Context, folder *model.Folder) (*model.Folder, error) {
	result, err := r.db.Collection(folderCollection).InsertOne(ctx, folder)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		folder.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return folder, nil
}

func (r *folderMongoRepository) Update(ctx context.Context, folder *model.Folder) error {
	folder.UpdatedAt = time.Now()

	result := r.db.Collection(folderCollection).FindOneAndReplace(
		ctx,
		bson.M{"_id": folder.ID, "user_id": folder.UserID},
		folder,
	)

	return result.Err()
}

func (r *folderMongoRepository) Delete(ctx context.Context, folder *model.Folder) error {
	_, err := r.db.Collection(folderCollection).DeleteOne(
		ctx,
		bson.M{"_id": folder.ID, "user_id": folder.UserID},
	)

	return err
}

func (r *folderMongoRepository) CountByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	return r.db.Collection(folderCollection).CountDocuments(ctx, bson.M{"user_id": userID})
}
