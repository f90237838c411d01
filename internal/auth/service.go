package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"library-admin/internal/config"
	"library-admin/internal/entities"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so a login failure never reveals which one was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service handles credential verification and password hashing.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Authenticate validates credentials and returns the user. Inactive
// accounts cannot log in.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return &user, nil
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.config.BcryptCost)
}
