package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/constants"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/models"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists           = errors.New("username or email already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameRequired     = errors.New("username is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles credential and account lifecycle logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username       string
	Email          string
	Password       string
	Bio            string
	Location       string
	ImageURL       string
	HeaderImageURL string
}

// Signup hashes the password and persists a new user. Username and email
// uniqueness is not pre-checked: the insert relies on the database unique
// constraints, so concurrent signups cannot race past a lookup.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Bio:            input.Bio,
		Location:       input.Location,
		ImageURL:       input.ImageURL,
		HeaderImageURL: input.HeaderImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = constants.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = constants.DefaultHeaderImageURL
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// AuthenticateInput holds the credentials for authentication.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and returns the matching user. Unknown
// usernames and wrong passwords report the same error.
func (s *AuthService) Authenticate(input AuthenticateInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput represents an edit to the authenticated user's profile.
// Nil pointer fields are left unchanged. Password must match the stored
// credential before any field is applied.
type UpdateProfileInput struct {
	Password       string
	Username       *string
	Email          *string
	Bio            *string
	Location       *string
	ImageURL       *string
	HeaderImageURL *string
}

// UpdateProfile edits profile fields after re-verifying the user's password.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		user.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		user.Email = email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.ImageURL != nil {
		user.ImageURL = *input.ImageURL
	}
	if input.HeaderImageURL != nil {
		user.HeaderImageURL = *input.HeaderImageURL
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes an account and everything it owns.
func (s *AuthService) DeleteUser(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
