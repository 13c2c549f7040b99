package services

import (
	"errors"
	"fmt"

	"fuyublog/internal/models"
	"fuyublog/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors so handlers can flash distinct notices for each outcome.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService handles business logic for registration and authentication.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to
// the database. The plaintext password in user.Password is replaced with its
// bcrypt hash before the record is persisted.
func (s *AuthService) RegisterUser(user *models.User) error {
	// Check if username or email already exists. The unique indexes on the
	// users table back these checks up under concurrent registration.
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username %q: %w", user.Username, ErrUsernameTaken)
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username %q: %w", user.Username, err)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %q: %w", user.Email, ErrEmailTaken)
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email %q: %w", user.Email, err)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// AuthenticateUser verifies credentials and returns the matching user.
// It distinguishes an unknown username from a wrong password so the login
// page can report each case. bcrypt.CompareHashAndPassword provides the
// constant-time comparison guarantee.
func (s *AuthService) AuthenticateUser(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}
