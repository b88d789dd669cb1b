package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vbonduro/crudapp/internal/domain"
)

// ErrInvalidCredentials is returned when the email is malformed or either
// credential is missing.
var ErrInvalidCredentials = errors.New("invalid email address or password")

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthService checks credentials. It issues no session or token.
type AuthService struct {
	userStore userRepository
	validate  *validator.Validate
}

func NewAuthService(userStore userRepository) *AuthService {
	return &AuthService{userStore: userStore, validate: validator.New()}
}

// Login returns the user whose email and bcrypt password hash match.
// Unknown users and wrong passwords yield ErrNoContent.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if password == "" || s.validate.Var(email, "required,email") != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoContent
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check password: %w", err)
	}
	return user, nil
}
