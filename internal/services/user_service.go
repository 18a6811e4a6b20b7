package services

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"github.com/avolkova/task-manager-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInUse            = errors.New("user is assigned to existing tasks")
	ErrEmailTaken           = errors.New("email already exists")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user CRUD business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateUserInput carries a partial update; nil fields stay unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// List returns all users.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// Create hashes the plaintext password and stores a new user.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByID retrieves a user by ID.
func (s *UserService) FindByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update merges the non-nil input fields into the stored user. A
// supplied plaintext password is hashed before storing.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		existing, err := s.userRepo.FindByEmail(*input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user. Fails with ErrUserInUse while any task is
// assigned to them.
func (s *UserService) Delete(id uint64) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrUserInUse
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
