package service

import (
	"context"
	"errors"
	"strings"

	dom "Tasker/internal/domain"
	"Tasker/internal/repo"
	"Tasker/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrForbidden          = errors.New("forbidden")
)

// UserService handles registration, credential checks, profile updates and
// the admin user listing.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// ValidateCredentials checks username and password; returns user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new user with hashed password and role "user".
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, string(hash), dom.RoleUser)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// UpdateProfile changes the caller's username and/or password. nil means keep
// the current value. The update is all-or-nothing: a username collision with
// any other user, the seeded admin included, rejects the whole change.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, newUsername, newPassword *string) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return dom.User{}, err
	}

	username := u.Username
	if newUsername != nil {
		username = strings.TrimSpace(*newUsername)
		if username == "" {
			return dom.User{}, ErrInvalidCredentials
		}
	}
	hash := u.PasswordHash
	if newPassword != nil {
		if *newPassword == "" {
			return dom.User{}, ErrInvalidCredentials
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
		if err != nil {
			return dom.User{}, err
		}
		hash = string(h)
	}

	out, err := s.repo.Update(ctx, userID, username, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return out, nil
}

// ListUsers returns all users if the requester has the admin role.
func (s *UserService) ListUsers(ctx context.Context, requesterID int64) ([]dom.User, error) {
	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx)
}

// EnsureAdmin creates the admin account if it does not exist yet. Called once
// at startup; a concurrent replica losing the insert race is fine.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.repo.Create(ctx, username, string(hash), dom.RoleAdmin)
	if utils.IsPGUniqueViolation(err) {
		return nil
	}
	return err
}
