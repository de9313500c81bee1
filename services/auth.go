package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"go-shopcart/apierr"
	"go-shopcart/models"
	"go-shopcart/store"
)

// AuthService verifies credentials. It deliberately reports the same error
// for an unknown email and a wrong password.
type AuthService struct {
	users store.UserStore
}

// NewAuthService creates an AuthService.
func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login returns the user matching the credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUser) {
		return models.User{}, apierr.Unauthorized("Incorrect email or password")
	}
	if err != nil {
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, apierr.Unauthorized("Incorrect email or password")
	}
	return user, nil
}
