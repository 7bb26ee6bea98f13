package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
)

// UserUsecase defines the business logic for profile operations on the
// calling user's own account.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params *UpdateUserParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}

// Profile is the read-only account snapshot exposed to callers. The password
// hash never leaves the usecase layer.
type Profile struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber *string
	CreatedAt   time.Time
}

// UpdateUserParams defines the optional parameters for updating a profile.
// UserID must match the authenticated user; only the fields that are not nil
// will be applied. An empty PhoneNumber value clears the stored number.
type UpdateUserParams struct {
	UserID      string
	Name        *string
	Email       *string
	PhoneNumber *string
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserIDMismatch = errors.New("user id in params does not match the authenticated user")
)

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Profile{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (u *userUsecase) Update(ctx context.Context, userID string, params *UpdateUserParams) (*Profile, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	// Reject spoofed payloads before touching the repository at all.
	if params.UserID != userID {
		return nil, ErrUserIDMismatch
	}

	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if params.Name != nil {
		if err := user.Rename(*params.Name); err != nil {
			return nil, err
		}
	}
	if params.Email != nil {
		if err := user.ChangeEmail(*params.Email); err != nil {
			return nil, err
		}
	}
	if params.PhoneNumber != nil {
		if *params.PhoneNumber == "" {
			user.SetPhoneNumber(nil)
		} else {
			user.SetPhoneNumber(params.PhoneNumber)
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &Profile{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (u *userUsecase) Delete(ctx context.Context, userID string) error {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// Deletion is soft on both layers: the entity flags itself and the
	// repository persists the flag instead of removing the document.
	user.Delete()

	return u.userRepo.Delete(ctx, user.ID)
}
