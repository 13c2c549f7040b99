package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"fuyublog/internal/models"
	"fuyublog/internal/repositories"
	"fuyublog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// notFoundErr builds the wrapped not-found error the GORM repositories return.
func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	// Test successful registration
	user := &models.User{
		Name:     "Alice Example",
		Username: "alice01",
		Email:    "alice@example.com",
		Password: "Passw0rd",
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// The stored password must be a hash, never the submitted plaintext
	assert.NotEqual(t, "Passw0rd", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Passw0rd")))

	// Test username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: 1}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", user.Username).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: 1}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_AuthenticateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       1,
		Name:     "Alice Example",
		Username: "alice01",
		Email:    "alice@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	got, err := authService.AuthenticateUser("alice01", "Passw0rd")
	assert.NoError(t, err)
	assert.Equal(t, user, got)
	mockRepo.AssertExpectations(t)

	// Test wrong password
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	got, err = authService.AuthenticateUser("alice01", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrWrongPassword)
	assert.Nil(t, got)
	mockRepo.AssertExpectations(t)

	// Test unknown username
	mockRepo.On("GetByUsername", "ghost123").Return(nil, notFoundErr("user")).Once()
	got, err = authService.AuthenticateUser("ghost123", "Passw0rd")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Nil(t, got)
	mockRepo.AssertExpectations(t)
}
