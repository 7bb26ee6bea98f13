package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
)

func TestNewFolderValidatesName(t *testing.T) {
	userID := bson.NewObjectID()

	folder, err := model.NewFolder("Reading", userID)
	require.NoError(t, err)
	require.Equal(t, "Reading", folder.Name)
	require.Equal(t, userID, folder.UserID)
	require.False(t, folder.IsFavorite)
	require.Nil(t, folder.LastVisitedAt)
	require.False(t, folder.CreatedAt.IsZero())

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := model.NewFolder(name, userID)
		require.ErrorIs(t, err, model.ErrEmptyName)
	}
}

func TestFolderRename(t *testing.T) {
	folder, err := model.NewFolder("Reading", bson.NewObjectID())
	require.NoError(t, err)

	require.ErrorIs(t, folder.Rename("  "), model.ErrEmptyName)
	require.Equal(t, "Reading", folder.Name)

	require.NoError(t, folder.Rename("Research"))
	require.Equal(t, "Research", folder.Name)
}

func TestFolderFavoriteIsIdempotent(t *testing.T) {
	folder, err := model.NewFolder("Reading", bson.NewObjectID())
	require.NoError(t, err)

	folder.MarkFavorite()
	folder.MarkFavorite()
	require.True(t, folder.IsFavorite)

	folder.UnmarkFavorite()
	require.False(t, folder.IsFavorite)
}

func TestFolderVisitSetsTimestamp(t *testing.T) {
	folder, err := model.NewFolder("Reading", bson.NewObjectID())
	require.NoError(t, err)

	before := time.Now()
	folder.Visit()

	require.NotNil(t, folder.LastVisitedAt)
	require.False(t, folder.LastVisitedAt.Before(before))
}

func TestFolderAddBookmark(t *testing.T) {
	userID := bson.NewObjectID()
	folder, err := model.NewFolder("Reading", userID)
	require.NoError(t, err)
	folder.ID = bson.NewObjectID()

	require.ErrorIs(t, folder.AddBookmark(nil), model.ErrNilBookmark)

	foreign, err := model.NewBookmark("Example", "https://example.com", bson.NewObjectID(), userID)
	require.NoError(t, err)
	require.ErrorIs(t, folder.AddBookmark(foreign), model.ErrBookmarkNotInFolder)
	require.Empty(t, folder.Bookmarks())

	bookmark, err := model.NewBookmark("Example", "https://example.com", folder.ID, userID)
	require.NoError(t, err)
	bookmark.ID = bson.NewObjectID()

	require.NoError(t, folder.AddBookmark(bookmark))
	require.Len(t, folder.Bookmarks(), 1)

	// Adding the same bookmark again does not create a duplicate entry.
	require.NoError(t, folder.AddBookmark(bookmark))
	require.Len(t, folder.Bookmarks(), 1)
}

func TestFolderRemoveBookmark(t *testing.T) {
	userID := bson.NewObjectID()
	folder, err := model.NewFolder("Reading", userID)
	require.NoError(t, err)
	folder.ID = bson.NewObjectID()

	bookmark, err := model.NewBookmark("Example", "https://example.com", folder.ID, userID)
	require.NoError(t, err)
	bookmark.ID = bson.NewObjectID()
	require.NoError(t, folder.AddBookmark(bookmark))

	// Unknown id is a no-op.
	folder.RemoveBookmark(bson.NewObjectID())
	require.Len(t, folder.Bookmarks(), 1)

	folder.RemoveBookmark(bookmark.ID)
	require.Empty(t, folder.Bookmarks())
}
