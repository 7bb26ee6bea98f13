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

// BookmarkRepository defines the interface for bookmark-related database
// operations. Queries are scoped by both the owning user id and the folder
// id, so neither cross-user nor cross-folder access can succeed.
type BookmarkRepository interface {
	GetAll(ctx context.Context, userID, folderID bson.ObjectID, page Pagination) ([]*model.Bookmark, error)
	GetByID(ctx context.Context, userID, folderID, bookmarkID bson.ObjectID) (*model.Bookmark, error)
	Add(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	Update(ctx context.Context, bookmark *model.Bookmark) error
	Delete(ctx context.Context, bookmark *model.Bookmark) error
	DeleteByFolder(ctx context.Context, userID, folderID bson.ObjectID) (int64, error)
	CountByFolder(ctx context.Context, userID, folderID bson.ObjectID) (int64, error)

	// GetFolderByID validates folder existence and ownership before a
	// bookmark is created under it.
	GetFolderByID(ctx context.Context, folderID, userID bson.ObjectID) (*model.Folder, error)
}

const bookmarkCollection = "bookmarks"

type bookmarkMongoRepository struct {
	db *mongo.Database
}

func NewBookmarkMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BookmarkRepository {
	collection := db.Collection(bookmarkCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "folder_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bookmark indexes")
	}

	return &bookmarkMongoRepository{db: db}
}

func (r *bookmarkMongoRepository) GetAll(
	ctx context.Context,
	userID, folderID bson.ObjectID,
	page Pagination,
) ([]*model.Bookmark, error) {
	findOptions := options.Find().
		SetLimit(page.limit()).
		SetSkip(page.Offset).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	filter := bson.M{"user_id": userID, "folder_id": folderID}

	cursor, err := r.db.Collection(bookmarkCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookmarks := make([]*model.Bookmark, 0)
	for cursor.Next(ctx) {
		var bookmark model.Bookmark
		if err := cursor.Decode(&bookmark); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

func (r *bookmarkMongoRepository) GetByID(
	ctx context.Context,
	userID, folderID, bookmarkID bson.ObjectID,
) (*model.Bookmark, error) {
	filter := bson.M{"_id": bookmarkID, "user_id": userID, "folder_id": folderID}

	result := r.db.Collection(bookmarkCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var bookmark model.Bookmark
	if err := result.Decode(&bookmark); err != nil {
		return nil, err
	}

	return &bookmark, nil
}

func (r *bookmarkMongoRepository) Add(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	result, err := r.db.Collection(bookmarkCollection).InsertOne(ctx, bookmark)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		bookmark.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return bookmark, nil
}

func (r *bookmarkMongoRepository) Update(ctx context.Context, bookmark *model.Bookmark) error {
	bookmark.UpdatedAt = time.Now()

	result := r.db.Collection(bookmarkCollection).FindOneAndReplace(
		ctx,
		bson.M{"_id": bookmark.ID, "user_id": bookmark.UserID, "folder_id": bookmark.FolderID},
		bookmark,
	)

	return result.Err()
}

func (r *bookmarkMongoRepository) Delete(ctx context.Context, bookmark *model.Bookmark) error {
	filter := bson.M{"_id": bookmark.ID, "user_id": bookmark.UserID, "folder_id": bookmark.FolderID}

	_, err := r.db.Collection(bookmarkCollection).DeleteOne(ctx, filter)

	return err
}

func (r *bookmarkMongoRepository) DeleteByFolder(
	ctx context.Context,
	userID, folderID bson.ObjectID,
) (int64, error) {
	result, err := r.db.Collection(bookmarkCollection).DeleteMany(
		ctx,
		bson.M{"user_id": userID, "folder_id": folderID},
	)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *bookmarkMongoRepository) CountByFolder(ctx context.Context, userID, folderID bson.ObjectID) (int64, error) {
	filter := bson.M{"user_id": userID, "folder_id": folderID}

	return r.db.Collection(bookmarkCollection).CountDocuments(ctx, filter)
}

func (r *bookmarkMongoRepository) GetFolderByID(ctx context.Context, folderID, userID bson.ObjectID) (*model.Folder, error) {
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
