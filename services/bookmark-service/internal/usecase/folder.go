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

// FolderUsecase defines the business logic for folder operations. Every
// operation is scoped by the calling user's id; folders owned by other users
// behave exactly like folders that do not exist.
//
// Not-found policy per operation: GetByID returns (nil, nil), Update and
// MarkVisited return ErrFolderNotFound, Delete returns (false, nil).
type FolderUsecase interface {
	GetAll(ctx context.Context, userID string, page repository.Pagination) ([]*model.Folder, error)
	GetByID(ctx context.Context, userID, folderID string) (*model.Folder, error)
	Count(ctx context.Context, userID string) (int64, error)
	Create(ctx context.Context, userID string, params *CreateFolderParams) (*model.Folder, error)
	Update(ctx context.Context, userID, folderID string, params *UpdateFolderParams) (*model.Folder, error)
	MarkVisited(ctx context.Context, userID, folderID string) error
	Delete(ctx context.Context, userID, folderID string) (bool, error)
}

// CreateFolderParams defines the parameters for creating a folder.
type CreateFolderParams struct {
	Name string
}

// UpdateFolderParams defines the optional parameters for updating a folder.
// Only the fields that are not nil will be applied.
type UpdateFolderParams struct {
	Name       *string
	IsFavorite *bool
}

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrNilParams      = errors.New("params must not be nil")
)

type folderUsecase struct {
	folderRepo   repository.FolderRepository
	bookmarkRepo repository.BookmarkRepository
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewFolderUsecase creates a new instance of FolderUsecase. The cache is
// optional and may be nil.
func NewFolderUsecase(
	folderRepo repository.FolderRepository,
	bookmarkRepo repository.BookmarkRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) FolderUsecase {
	return &folderUsecase{
		folderRepo:   folderRepo,
		bookmarkRepo: bookmarkRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
	}
}

func (u *folderUsecase) GetAll(
	ctx context.Context,
	userID string,
	page repository.Pagination,
) ([]*model.Folder, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	return u.folderRepo.GetAll(ctx, uid, page)
}

func (u *folderUsecase) GetByID(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	// An id that does not even parse cannot name an existing folder.
	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return nil, nil
	}

	if u.cache != nil {
		var cached model.Folder
		if ok, err := u.cache.Get(ctx, folderKey(userID, folderID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	folder, err := u.folderRepo.GetByID(ctx, uid, fid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	if u.cache != nil {
		// Advisory: a failed cache write never fails the read.
		_ = u.cache.Set(ctx, folderKey(userID, folderID), folder, u.cacheTTL)
	}

	return folder, nil
}

func (u *folderUsecase) Count(ctx context.Context, userID string) (int64, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, err
	}

	if u.cache != nil {
		var cached int64
		if ok, err := u.cache.Get(ctx, folderCountKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	count, err := u.folderRepo.CountByUser(ctx, uid)
	if err != nil {
		return 0, err
	}

	if u.cache != nil {
		_ = u.cache.Set(ctx, folderCountKey(userID), count, u.cacheTTL)
	}

	return count, nil
}

func (u *folderUsecase) Create(ctx context.Context, userID string, params *CreateFolderParams) (*model.Folder, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	folder, err := model.NewFolder(params.Name, uid)
	if err != nil {
		return nil, err
	}

	created, err := u.folderRepo.Add(ctx, folder)
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID, created.ID.Hex())

	return created, nil
}

func (u *folderUsecase) Update(
	ctx context.Context,
	userID, folderID string,
	params *UpdateFolderParams,
) (*model.Folder, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	folder, err := u.load(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if err := folder.Rename(*params.Name); err != nil {
			return nil, err
		}
	}
	if params.IsFavorite != nil {
		if *params.IsFavorite {
			folder.MarkFavorite()
		} else {
			folder.UnmarkFavorite()
		}
	}

	if err := u.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID, folderID)

	return folder, nil
}

func (u *folderUsecase) MarkVisited(ctx context.Context, userID, folderID string) error {
	folder, err := u.load(ctx, userID, folderID)
	if err != nil {
		return err
	}

	folder.Visit()

	if err := u.folderRepo.Update(ctx, folder); err != nil {
		return err
	}

	u.invalidate(ctx, userID, folderID)

	if u.cache != nil {
		// Advisory visit counter, best effort.
		_, _ = u.cache.Increment(ctx, folderVisitsKey(folderID))
	}

	return nil
}

func (u *folderUsecase) Delete(ctx context.Context, userID, folderID string) (bool, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return false, nil
	}

	folder, err := u.folderRepo.GetByID(ctx, uid, fid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}

	if err := u.folderRepo.Delete(ctx, folder); err != nil {
		return false, err
	}

	// Bookmarks never outlive their folder.
	if _, err := u.bookmarkRepo.DeleteByFolder(ctx, uid, fid); err != nil {
		return false, err
	}

	u.invalidate(ctx, userID, folderID)

	return true, nil
}

// load fetches an owned folder, mapping both a malformed id and a missing
// document to ErrFolderNotFound.
func (u *folderUsecase) load(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	fid, err := bson.ObjectIDFromHex(folderID)
	if err != nil {
		return nil, ErrFolderNotFound
	}

	folder, err := u.folderRepo.GetByID(ctx, uid, fid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	return folder, nil
}

func (u *folderUsecase) invalidate(ctx context.Context, userID, folderID string) {
	if u.cache == nil {
		return
	}

	_ = u.cache.Remove(ctx, folderKey(userID, folderID), folderCountKey(userID))
}
