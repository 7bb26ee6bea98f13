package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
)

func TestNewUserValidatesFields(t *testing.T) {
	phone := "+66812345678"

	user, err := model.NewUser("Alice", "alice@example.com", "hashed", &phone)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "hashed", user.PasswordHash)
	require.NotNil(t, user.PhoneNumber)
	require.Equal(t, phone, *user.PhoneNumber)
	require.False(t, user.IsDeleted)

	_, err = model.NewUser("", "alice@example.com", "hashed", nil)
	require.ErrorIs(t, err, model.ErrEmptyName)

	_, err = model.NewUser("Alice", "  ", "hashed", nil)
	require.ErrorIs(t, err, model.ErrEmptyEmail)

	_, err = model.NewUser("Alice", "alice@example.com", "", nil)
	require.ErrorIs(t, err, model.ErrEmptyPasswordHash)
}

func TestUserMutations(t *testing.T) {
	user, err := model.NewUser("Alice", "alice@example.com", "hashed", nil)
	require.NoError(t, err)

	require.ErrorIs(t, user.Rename(" "), model.ErrEmptyName)
	require.ErrorIs(t, user.ChangeEmail(""), model.ErrEmptyEmail)
	require.ErrorIs(t, user.ChangePassword(""), model.ErrEmptyPasswordHash)

	require.NoError(t, user.Rename("Alice B"))
	require.NoError(t, user.ChangeEmail("alice.b@example.com"))
	require.NoError(t, user.ChangePassword("rehashed"))
	require.Equal(t, "Alice B", user.Name)
	require.Equal(t, "alice.b@example.com", user.Email)
	require.Equal(t, "rehashed", user.PasswordHash)
}

func TestUserSetPhoneNumber(t *testing.T) {
	user, err := model.NewUser("Alice", "alice@example.com", "hashed", nil)
	require.NoError(t, err)
	require.Nil(t, user.PhoneNumber)

	phone := "+66812345678"
	user.SetPhoneNumber(&phone)
	require.NotNil(t, user.PhoneNumber)

	user.SetPhoneNumber(nil)
	require.Nil(t, user.PhoneNumber)
}

func TestUserDelete(t *testing.T) {
	user, err := model.NewUser("Alice", "alice@example.com", "hashed", nil)
	require.NoError(t, err)

	user.Delete()
	require.True(t, user.IsDeleted)
}
