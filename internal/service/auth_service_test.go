package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eldenbuilds/internal/auth"
	"eldenbuilds/internal/errors"
	"eldenbuilds/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, email, username, photo string) (int64, error) {
	args := m.Called(ctx, email, username, photo)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsSessionRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "Mel",
			email:    "mel@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username or email",
			username: "Mel",
			email:    "mel@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockStore := new(MockSessionStore)

			service := NewAuthService(mockRepo, jwtService, mockStore)
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				// stored hash verifies against the original password
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("pw123"), 10)
	storedUser := &model.User{
		ID:           42,
		Username:     "Mel",
		Email:        "mel@x.com",
		PasswordHash: string(hashedPassword),
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "mel@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "mel@x.com").Return(storedUser, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "mel@x.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "mel@x.com").Return(storedUser, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockSessionStore))

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)

				// the issued token carries the stored user's identifier
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, storedUser.ID, claims.UserID)
				assert.Equal(t, storedUser.Email, claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	mockRepo := new(MockUserRepository)
	mockStore := new(MockSessionStore)
	service := NewAuthService(mockRepo, jwtService, mockStore)

	tokenID, token, err := jwtService.GenerateSessionToken(42, "mel@x.com")
	assert.NoError(t, err)

	mockStore.On("RevokeSession", mock.Anything, tokenID, mock.AnythingOfType("time.Duration")).Return(nil)

	assert.NoError(t, service.Logout(context.Background(), token))
	mockStore.AssertExpectations(t)

	// garbage tokens are rejected without touching the store
	err = service.Logout(context.Background(), "not-a-token")
	assert.Equal(t, errors.ErrInvalidCredentials, err)

	// a well-signed token without an expiry was not issued by us
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: 42, Email: "mel@x.com"})
	signed, err := noExpiry.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	err = service.Logout(context.Background(), signed)
	assert.Equal(t, errors.ErrInvalidCredentials, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful update",
			email: "mel@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateProfile", mock.Anything, "mel@x.com", "Melina", "melina.png").Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name:  "no matching user",
			email: "nobody@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateProfile", mock.Anything, "nobody@x.com", "Melina", "melina.png").Return(int64(0), nil)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:  "new username already taken",
			email: "mel@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateProfile", mock.Anything, "mel@x.com", "Melina", "melina.png").Return(int64(0), gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockSessionStore))
			err := service.UpdateProfile(context.Background(), tt.email, "Melina", "melina.png")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
