package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/config"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
	"github.com/thanaritk/markvault/shared/auth"
	"github.com/thanaritk/markvault/shared/mailer"
	"github.com/thanaritk/markvault/shared/provider"
	"github.com/thanaritk/markvault/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*Tokens, error)
	Login(ctx context.Context, params LoginParams) (*Tokens, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber *string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// Tokens is an issued access/refresh token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

var (
	ErrEmailAlreadyUsed    = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrGoogleSignInOff     = errors.New("google sign-in is not configured")
)

type authUsecase struct {
	userRepo       repository.UserRepository
	jwtAuth        auth.JWTAuthenticator
	mailer         *mailer.Mailer
	googleVerifier *provider.GoogleVerifier
	tokenCfg       config.TokenConfig
	logger         *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase. Both the mailer and
// the Google verifier are optional and may be nil.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	m *mailer.Mailer,
	googleVerifier *provider.GoogleVerifier,
	tokenCfg config.TokenConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		jwtAuth:        jwtAuth,
		mailer:         m,
		googleVerifier: googleVerifier,
		tokenCfg:       tokenCfg,
		logger:         logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*Tokens, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := model.NewUser(params.Name, params.Email, passwordHash, params.PhoneNumber)
	if err != nil {
		return nil, err
	}

	created, err := u.userRepo.Add(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	u.sendWelcomeMail(created)

	return u.issueTokens(created.ID.Hex())
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*Tokens, error) {
	user, err := u.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(user.ID.Hex())
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken string) (*Tokens, error) {
	if u.googleVerifier == nil {
		return nil, ErrGoogleSignInOff
	}

	identity, err := u.googleVerifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := u.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		user, err = u.registerGoogleUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	return u.issueTokens(user.ID.Hex())
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := u.jwtAuth.ValidateUserToken(refreshToken, u.tokenCfg.RefreshTokenSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// The account may have been deleted since the token was issued.
	if _, err := u.getUserByHexID(ctx, claims.UserID); err != nil {
		return nil, err
	}

	return u.issueTokens(claims.UserID)
}

func (u *authUsecase) registerGoogleUser(ctx context.Context, identity *provider.GoogleIdentity) (*model.User, error) {
	name := identity.Name
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}

	// Google accounts never log in with a local password; store an
	// unguessable placeholder hash so the invariant on the field holds.
	passwordHash, err := security.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	user, err := model.NewUser(name, identity.Email, passwordHash, nil)
	if err != nil {
		return nil, err
	}

	created, err := u.userRepo.Add(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	u.sendWelcomeMail(created)

	return created, nil
}

func (u *authUsecase) getUserByHexID(ctx context.Context, userID string) (*model.User, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) issueTokens(userID string) (*Tokens, error) {
	accessToken, err := u.jwtAuth.GenerateUserToken(
		userID,
		u.tokenCfg.AccessTokenSecret,
		u.tokenCfg.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.jwtAuth.GenerateUserToken(
		userID,
		u.tokenCfg.RefreshTokenSecret,
		u.tokenCfg.RefreshTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// sendWelcomeMail delivers the welcome email on a best-effort basis; a mail
// failure never fails a registration.
func (u *authUsecase) sendWelcomeMail(user *model.User) {
	if u.mailer == nil {
		return
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account is ready. Create a folder and start saving bookmarks.</p>

		<p>Thank you,</p>
		<p>The Markvault Team</p>
	`, user.Name)

	if err := u.mailer.SendHTML([]string{user.Email}, "Welcome to Markvault", body); err != nil {
		u.logger.Error().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}
}
