package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eldenbuilds/internal/auth"
	"eldenbuilds/internal/errors"
	"eldenbuilds/internal/model"
	"eldenbuilds/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, email, username, photo string) error
	GetProfile(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a hashed password. Uniqueness of
// username and email is enforced by the store's constraints, not a
// pre-check, so concurrent registrations cannot race past each other.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a signed session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	_, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// Logout revokes the session carried by the token until its natural
// expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return errors.ErrInvalidCredentials
	}
	// issued tokens always carry an expiry
	if claims.ExpiresAt == nil {
		return errors.ErrInvalidCredentials
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.sessionStore.RevokeSession(ctx, claims.ID, ttl)
}

// UpdateProfile overwrites username and photo for the user with the
// given email. A zero-row update means no such user.
func (s *authService) UpdateProfile(ctx context.Context, email, username, photo string) error {
	rows, err := s.userRepo.UpdateProfile(ctx, email, username, photo)
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return errors.ErrDuplicateUser
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if rows == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

// GetProfile returns the stored user for the given id.
func (s *authService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
