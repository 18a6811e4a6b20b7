package services

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/repository"
	"github.com/avolkova/task-manager-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrFailedToIssueToken = errors.New("failed to issue token")
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication. Username is the
// user's email address.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns a signed bearer token whose
// subject is the user's email.
func (s *AuthService) Login(input LoginInput) (string, error) {
	user, err := s.userRepo.FindByEmail(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}

	return signed, nil
}
