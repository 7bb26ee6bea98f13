package usecase_test

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
)

// memoryFolderRepo is an in-memory FolderRepository. Misses surface as
// mongo.ErrNoDocuments, matching the driver-backed implementation.
type memoryFolderRepo struct {
	folders     map[bson.ObjectID]*model.Folder
	deleteCalls int
}

func newMemoryFolderRepo() *memoryFolderRepo {
	return &memoryFolderRepo{folders: make(map[bson.ObjectID]*model.Folder)}
}

func (r *memoryFolderRepo) GetAll(
	_ context.Context,
	userID bson.ObjectID,
	_ repository.Pagination,
) ([]*model.Folder, error) {
	folders := make([]*model.Folder, 0)
	for _, folder := range r.folders {
		if folder.UserID == userID {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func (r *memoryFolderRepo) GetByID(_ context.Context, userID, folderID bson.ObjectID) (*model.Folder, error) {
	folder, ok := r.folders[folderID]
	if !ok || folder.UserID != userID {
		return nil, mongo.ErrNoDocuments
	}
	return folder, nil
}

func (r *memoryFolderRepo) Add(_ context.Context, folder *model.Folder) (*model.Folder, error) {
	folder.ID = bson.NewObjectID()
	r.folders[folder.ID] = folder
	return folder, nil
}

func (r *memoryFolderRepo) Update(_ context.Context, folder *model.Folder) error {
	existing, ok := r.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return mongo.ErrNoDocuments
	}
	folder.UpdatedAt = time.Now()
	r.folders[folder.ID] = folder
	return nil
}

func (r *memoryFolderRepo) Delete(_ context.Context, folder *model.Folder) error {
	r.deleteCalls++
	delete(r.folders, folder.ID)
	return nil
}

func (r *memoryFolderRepo) CountByUser(_ context.Context, userID bson.ObjectID) (int64, error) {
	var count int64
	for _, folder := range r.folders {
		if folder.UserID == userID {
			count++
		}
	}
	return count, nil
}

// memoryBookmarkRepo is an in-memory BookmarkRepository. It shares a
// memoryFolderRepo so GetFolderByID sees the same folders the folder tests
// create.
type memoryBookmarkRepo struct {
	bookmarks   map[bson.ObjectID]*model.Bookmark
	folders     *memoryFolderRepo
	deleteCalls int
}

func newMemoryBookmarkRepo(folders *memoryFolderRepo) *memoryBookmarkRepo {
	return &memoryBookmarkRepo{
		bookmarks: make(map[bson.ObjectID]*model.Bookmark),
		folders:   folders,
	}
}

func (r *memoryBookmarkRepo) GetAll(
	_ context.Context,
	userID, folderID bson.ObjectID,
	_ repository.Pagination,
) ([]*model.Bookmark, error) {
	bookmarks := make([]*model.Bookmark, 0)
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID && bookmark.FolderID == folderID {
			bookmarks = append(bookmarks, bookmark)
		}
	}
	return bookmarks, nil
}

func (r *memoryBookmarkRepo) GetByID(
	_ context.Context,
	userID, folderID, bookmarkID bson.ObjectID,
) (*model.Bookmark, error) {
	bookmark, ok := r.bookmarks[bookmarkID]
	if !ok || bookmark.UserID != userID || bookmark.FolderID != folderID {
		return nil, mongo.ErrNoDocuments
	}
	return bookmark, nil
}

func (r *memoryBookmarkRepo) Add(_ context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	bookmark.ID = bson.NewObjectID()
	r.bookmarks[bookmark.ID] = bookmark
	return bookmark, nil
}

func (r *memoryBookmarkRepo) Update(_ context.Context, bookmark *model.Bookmark) error {
	existing, ok := r.bookmarks[bookmark.ID]
	if !ok || existing.UserID != bookmark.UserID || existing.FolderID != bookmark.FolderID {
		return mongo.ErrNoDocuments
	}
	bookmark.UpdatedAt = time.Now()
	r.bookmarks[bookmark.ID] = bookmark
	return nil
}

func (r *memoryBookmarkRepo) Delete(_ context.Context, bookmark *model.Bookmark) error {
	r.deleteCalls++
	delete(r.bookmarks, bookmark.ID)
	return nil
}

func (r *memoryBookmarkRepo) DeleteByFolder(_ context.Context, userID, folderID bson.ObjectID) (int64, error) {
	var deleted int64
	for id, bookmark := range r.bookmarks {
		if bookmark.UserID == userID && bookmark.FolderID == folderID {
			delete(r.bookmarks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryBookmarkRepo) CountByFolder(_ context.Context, userID, folderID bson.ObjectID) (int64, error) {
	var count int64
	for _, bookmark := range r.bookmarks {
		if bookmark.UserID == userID && bookmark.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

func (r *memoryBookmarkRepo) GetFolderByID(ctx context.Context, folderID, userID bson.ObjectID) (*model.Folder, error) {
	return r.folders.GetByID(ctx, userID, folderID)
}

// memoryUserRepo is an in-memory UserRepository with the same soft-delete
// semantics as the mongo implementation: deleted users stay stored but are
// invisible to reads.
type memoryUserRepo struct {
	users       map[bson.ObjectID]*model.User
	updateCalls int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *memoryUserRepo) GetByID(_ context.Context, userID bson.ObjectID) (*model.User, error) {
	user, ok := r.users[userID]
	if !ok || user.IsDeleted {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email && !user.IsDeleted {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memoryUserRepo) Add(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			// Same shape the unique email index produces.
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	user.ID = bson.NewObjectID()
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *model.User) error {
	r.updateCalls++
	existing, ok := r.users[user.ID]
	if !ok || existing.IsDeleted {
		return mongo.ErrNoDocuments
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, userID bson.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.IsDeleted = true
	return nil
}

// memoryCache stores JSON payloads keyed by string, mirroring the Redis
// implementation closely enough to observe read-through and invalidation.
type memoryCache struct {
	values   map[string][]byte
	counters map[string]int64
	removed  []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values:   make(map[string][]byte),
		counters: make(map[string]int64),
	}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	payload, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = payload
	return nil
}

func (c *memoryCache) Remove(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
		c.removed = append(c.removed, key)
	}
	return nil
}

func (c *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	c.counters[key]++
	return c.counters[key], nil
}
