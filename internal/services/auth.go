package services

import (
	"errors"
	"fmt"
	"strings"

	"ideaboard/internal/models"
	"ideaboard/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
}

type authService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{
		db:       db,
		validate: validator.New(),
	}
}

// Register creates a user with a lowercased email and a bcrypt credential.
// The caller establishes the session for the new user.
func (s *authService) Register(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validate.Var(email, "required,email,max=150"); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if err := s.validate.Var(password, "required,min=6,max=200"); err != nil {
		return nil, fmt.Errorf("%w: password must be 6 to 200 characters", ErrInvalidInput)
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique index backstop for a racing registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate resolves credentials to a user. Lookup miss and hash
// mismatch are indistinguishable to the caller.
func (s *authService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
