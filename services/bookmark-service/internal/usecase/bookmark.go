package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
	"github.com/thanaritk/markvault/shared/cache"
)

// BookmarkUsecase defines the business logic for bookmark operations. All
// operations are scoped by both the calling user's id and the enclosing
// folder's id; a bookmark outside that scope behaves like one that does not
// exist.
//
// Not-found policy per operation: GetByID returns (nil, nil), Update and
// MarkVisited return ErrBookmarkNotFound, Delete returns (false, nil).
// Create reports a missing or foreign target folder as ErrFolderNotFound.
type BookmarkUsecase interface {
	GetAll(ctx context.Context, userID, folderID string, page repository.Pagination) ([]*model.Bookmark, error)
	GetByID(ctx context.Context, userID, folderID, bookmarkID string) (*model.Bookmark, error)
	Count(ctx context.Context, userID, folderID string) (int64, error)
	Create(ctx context.Context, userID, folderID string, params *CreateBookmarkParams) (*model.Bookmark, error)
	Update(ctx context.Context, userID, folderID string, params *UpdateBookmarkParams) (*model.Bookmark, error)
	MarkVisited(ctx context.Context, userID, folderID, bookmarkID string) error
	Delete(ctx context.Context, userID, folderID, bookmarkID string) (bool, error)
}

// CreateBookmarkParams defines the parameters for creating a bookmark.
type CreateBookmarkParams struct {
	Name string
	URL  string
}

// UpdateBookmarkParams defines the optional parameters for updating a
// bookmark. ID names the bookmark; only the fields that are not nil will be
// applied.
type UpdateBookmarkParams struct {
	ID         string
	Name       *string
	URL        *string
	IsFavorite *bool
}

var ErrBookmarkNotFound = errors.New("bookmark not found")

type bookmarkUsecase struct {
	bookmarkRepo repository.BookmarkRepository
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewBookmarkUsecase creates a new instance of BookmarkUsecase. The cache is
// optional and may be nil.
func NewBookmarkUsecase(bookmarkRepo repository.BookmarkRepository, c cache.Cache, cacheTTL time.Duration) BookmarkUsecase {
	return &bookmarkUsecase{
		bookmarkRepo: bookmarkRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
	}
}

func (u *bookmarkUsecase) GetAll(
	ctx context.Context,
	userID, folderID string,
	page repository.Pagination,
) ([]*model.Bookmark, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return []*model.Bookmark{}, nil
	}

	return u.bookmarkRepo.GetAll(ctx, uid, fid, page)
}

func (u *bookmarkUsecase) GetByID(ctx context.Context, userID, folderID, bookmarkID string) (*model.Bookmark, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return nil, nil
	}

	bid, err := bson.ObjectIDFromHex(bookmarkID)
	if err != nil {
		return nil, nil
	}

	if u.cache != nil {
		var cached model.Bookmark
		if ok, err := u.cache.Get(ctx, bookmarkKey(userID, folderID, bookmarkID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	bookmark, err := u.bookmarkRepo.GetByID(ctx, uid, fid, bid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	if u.cache != nil {
		_ = u.cache.Set(ctx, bookmarkKey(userID, folderID, bookmarkID), bookmark, u.cacheTTL)
	}

	return bookmark, nil
}

func (u *bookmarkUsecase) Count(ctx context.Context, userID, folderID string) (int64, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return 0, nil
	}

	if u.cache != nil {
		var cached int64
		if ok, err := u.cache.Get(ctx, bookmarkCountKey(userID, folderID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	count, err := u.bookmarkRepo.CountByFolder(ctx, uid, fid)
	if err != nil {
		return 0, err
	}

	if u.cache != nil {
		_ = u.cache.Set(ctx, bookmarkCountKey(userID, folderID), count, u.cacheTTL)
	}

	return count, nil
}

func (u *bookmarkUsecase) Create(
	ctx context.Context,
	userID, folderID string,
	params *CreateBookmarkParams,
) (*model.Bookmark, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return nil, ErrFolderNotFound
	}

	folder, err := u.bookmarkRepo.GetFolderByID(ctx, fid, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	bookmark, err := model.NewBookmark(params.Name, params.URL, folder.ID, uid)
	if err != nil {
		return nil, err
	}

	if err := folder.AddBookmark(bookmark); err != nil {
		return nil, err
	}

	created, err := u.bookmarkRepo.Add(ctx, bookmark)
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID, folderID, created.ID.Hex())

	return created, nil
}

func (u *bookmarkUsecase) Update(
	ctx context.Context,
	userID, folderID string,
	params *UpdateBookmarkParams,
) (*model.Bookmark, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	bookmark, err := u.load(ctx, userID, folderID, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if err := bookmark.Rename(*params.Name); err != nil {
			return nil, err
		}
	}
	if params.URL != nil {
		if err := bookmark.ChangeURL(*params.URL); err != nil {
			return nil, err
		}
	}
	if params.IsFavorite != nil {
		if *params.IsFavorite {
			bookmark.MarkFavorite()
		} else {
			bookmark.UnmarkFavorite()
		}
	}

	if err := u.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID, folderID, params.ID)

	return bookmark, nil
}

func (u *bookmarkUsecase) MarkVisited(ctx context.Context, userID, folderID, bookmarkID string) error {
	bookmark, err := u.load(ctx, userID, folderID, bookmarkID)
	if err != nil {
		return err
	}

	bookmark.Visit()

	if err := u.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return err
	}

	u.invalidate(ctx, userID, folderID, bookmarkID)

	if u.cache != nil {
		// Advisory visit counter, best effort.
		_, _ = u.cache.Increment(ctx, bookmarkVisitsKey(bookmarkID))
	}

	return nil
}

func (u *bookmarkUsecase) Delete(ctx context.Context, userID, folderID, bookmarkID string) (bool, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return false, nil
	}

	bid, err := bson.ObjectIDFromHex(bookmarkID)
	if err != nil {
		return false, nil
	}

	bookmark, err := u.bookmarkRepo.GetByID(ctx, uid, fid, bid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}

	if err := u.bookmarkRepo.Delete(ctx, bookmark); err != nil {
		return false, err
	}

	u.invalidate(ctx, userID, folderID, bookmarkID)

	return true, nil
}

// load fetches an owned, folder-scoped bookmark, mapping both a malformed id
// and a missing document to ErrBookmarkNotFound.
func (u *bookmarkUsecase) load(ctx context.Context, userID, folderID, bookmarkID string) (*model.Bookmark, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return nil, ErrBookmarkNotFound
	}

	bid, err := bson.ObjectIDFromHex(bookmarkID)
	if err != nil {
		return nil, ErrBookmarkNotFound
	}

	bookmark, err := u.bookmarkRepo.GetByID(ctx, uid, fid, bid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookmarkNotFound
		}
		return nil, err
	}

	return bookmark, nil
}

func (u *bookmarkUsecase) invalidate(ctx context.Context, userID, folderID, bookmarkID string) {
	if u.cache == nil {
		return
	}

	_ = u.cache.Remove(
		ctx,
		bookmarkKey(userID, folderID, bookmarkID),
		bookmarkCountKey(userID, folderID),
	)
}
