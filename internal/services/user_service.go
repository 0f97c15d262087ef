package services

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/devlinkr/devlinkr-be/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when registering with an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when no user document matches the ID.
	ErrUserNotFound = errors.New("user not found")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	RegisterUser(name, email, password string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterUser creates a new account, hashing the password and deriving a
// gravatar avatar from the email.
func (s *UserService) RegisterUser(name, email, password string) (models.User, error) {
	if _, err := s.users.FindUserByEmail(email); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Avatar:   gravatarURL(email),
		Password: string(hashedPassword),
		Date:     time.Now(),
	}

	if err := s.users.InsertUser(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.users.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return *user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := s.users.FindUserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return *user, nil
}

// gravatarURL derives the avatar reference captured in post and comment
// snapshots.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", md5.Sum([]byte(normalized)))
}
