package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"go-shopcart/apierr"
	"go-shopcart/models"
	"go-shopcart/store"
)

// UserService handles registration and profile management. New users start
// with the configured wallet balance and the default-address sentinel.
type UserService struct {
	users store.UserStore

	defaultWalletMoney float64
	defaultAddress     string
	minAddressLength   int

	log zerolog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, defaultWalletMoney float64, defaultAddress string, minAddressLength int, log zerolog.Logger) *UserService {
	return &UserService{
		users:              users,
		defaultWalletMoney: defaultWalletMoney,
		defaultAddress:     defaultAddress,
		minAddressLength:   minAddressLength,
		log:                log,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, apierr.BadRequest("Email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:        name,
		Email:       email,
		Password:    string(hash),
		WalletMoney: s.defaultWalletMoney,
		Address:     s.defaultAddress,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	s.log.Info().Str("email", email).Msg("user registered")
	return created, nil
}

// GetUserByID looks a user up by hex object id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apierr.NotFound("User not found")
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoUser) {
		return models.User{}, apierr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetAddress replaces the user's shipping address after a minimum-length
// check.
func (s *UserService) SetAddress(ctx context.Context, user models.User, address string) (string, error) {
	if len(address) < s.minAddressLength {
		return "", apierr.BadRequest(fmt.Sprintf("Address should be of length of at least %d characters", s.minAddressLength))
	}
	if err := s.users.SetAddress(ctx, user.ID, address); err != nil {
		return "", err
	}
	return address, nil
}

// HasNonDefaultAddress reports whether the user has set a real address.
// Consumed by checkout.
func (s *UserService) HasNonDefaultAddress(user models.User) bool {
	return user.Address != "" && user.Address != s.defaultAddress
}
