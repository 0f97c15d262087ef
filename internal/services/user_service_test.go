package services

import (
	"strings"
	"testing"

	"github.com/devlinkr/devlinkr-be/internal/store/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	users := mock.NewUserStore()
	svc := NewUserService(users)

	user, err := svc.RegisterUser("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/"))
	assert.False(t, user.Date.IsZero())

	// Password is stored hashed, never verbatim
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))

	stored, err := users.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	users := mock.NewUserStore()
	svc := NewUserService(users)

	_, err := svc.RegisterUser("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.RegisterUser("Imposter", "ada@example.com", "different")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticateUser(t *testing.T) {
	users := mock.NewUserStore()
	svc := NewUserService(users)

	registered, err := svc.RegisterUser("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.AuthenticateUser("ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.AuthenticateUser("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	users := mock.NewUserStore()
	svc := NewUserService(users)

	registered, err := svc.RegisterUser("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = svc.GetUserByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
