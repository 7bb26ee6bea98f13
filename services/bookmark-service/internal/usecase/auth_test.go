package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/config"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
	"github.com/thanaritk/markvault/shared/auth"
)

var testTokenCfg = config.TokenConfig{
	Issuer:                "markvault",
	AccessTokenSecret:     "access-secret",
	RefreshTokenSecret:    "refresh-secret",
	AccessTokenExpiresIn:  15 * time.Minute,
	RefreshTokenExpiresIn: time.Hour,
}

func newAuthFixture() (usecase.AuthUsecase, *memoryUserRepo, auth.JWTAuthenticator) {
	userRepo := newMemoryUserRepo()
	jwtAuth := auth.NewJWTAuthenticator("markvault", testTokenCfg.Issuer)
	logger := zerolog.Nop()
	uc := usecase.NewAuthUsecase(userRepo, jwtAuth, nil, nil, testTokenCfg, &logger)
	return uc, userRepo, jwtAuth
}

func TestRegisterIssuesTokens(t *testing.T) {
	uc, userRepo, jwtAuth := newAuthFixture()
	ctx := context.Background()

	tokens, err := uc.Register(ctx, usecase.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	stored, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", stored.PasswordHash)

	claims, err := jwtAuth.ValidateUserToken(tokens.AccessToken, testTokenCfg.AccessTokenSecret)
	require.NoError(t, err)
	require.Equal(t, stored.ID.Hex(), claims.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()
	params := usecase.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	}

	_, err := uc.Register(ctx, params)
	require.NoError(t, err)

	_, err = uc.Register(ctx, params)
	require.ErrorIs(t, err, usecase.ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, usecase.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	tokens, err := uc.Login(ctx, usecase.LoginParams{Email: "alice@example.com", Password: "s3cret-password"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)

	_, err = uc.Login(ctx, usecase.LoginParams{Email: "alice@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	// An unknown email and a wrong password are indistinguishable.
	_, err = uc.Login(ctx, usecase.LoginParams{Email: "nobody@example.com", Password: "s3cret-password"})
	require.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	tokens, err := uc.Register(ctx, usecase.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// An access token is signed with a different secret and must not refresh.
	_, err = uc.Refresh(ctx, tokens.AccessToken)
	require.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)

	_, err = uc.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)

	// A deleted account invalidates outstanding refresh tokens.
	user, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, userRepo.Delete(ctx, user.ID))

	_, err = uc.Refresh(ctx, tokens.RefreshToken)
	require.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)
}

func TestLoginWithGoogleRequiresVerifier(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.LoginWithGoogle(context.Background(), "some-id-token")
	require.ErrorIs(t, err, usecase.ErrGoogleSignInOff)
}
