package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"eldenbuilds/internal/errors"
	"eldenbuilds/internal/model"
)

// MockBuildRepository is a mock implementation of BuildRepository.
type MockBuildRepository struct {
	mock.Mock
}

func (m *MockBuildRepository) Create(ctx context.Context, build *model.Build) error {
	args := m.Called(ctx, build)
	return args.Error(0)
}

func (m *MockBuildRepository) FindByID(ctx context.Context, id uint) (*model.Build, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Build), args.Error(1)
}

func (m *MockBuildRepository) FindByName(ctx context.Context, name string) (*model.Build, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Build), args.Error(1)
}

func (m *MockBuildRepository) List(ctx context.Context) ([]model.Build, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Build), args.Error(1)
}

func (m *MockBuildRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBuildRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBuildRepository) Save(ctx context.Context, build *model.Build) error {
	args := m.Called(ctx, build)
	return args.Error(0)
}

func TestBuildService_Create(t *testing.T) {
	tests := []struct {
		name          string
		build         *model.Build
		setupMock     func(*MockBuildRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful create with defaulted stats",
			build: &model.Build{Name: "Moonveil Samurai", Weapon: "Moonveil", UserID: 42},
			setupMock: func(mb *MockBuildRepository, mu *MockUserRepository) {
				mu.On("FindByID", mock.Anything, uint(42)).Return(&model.User{ID: 42}, nil)
				mb.On("Create", mock.Anything, mock.AnythingOfType("*model.Build")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Build).ID = 7
				}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "owner cannot be resolved",
			build: &model.Build{Name: "Orphaned", UserID: 99},
			setupMock: func(mb *MockBuildRepository, mu *MockUserRepository) {
				mu.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrOwnerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBuilds := new(MockBuildRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockBuilds, mockUsers)

			service := NewBuildService(mockBuilds, mockUsers, nil)
			created, err := service.Create(context.Background(), tt.build)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.NotZero(t, created.ID)
				// stats not present in the submission stay at 0
				assert.Zero(t, created.Vigor)
				assert.Zero(t, created.Arcane)
			}

			mockBuilds.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestBuildService_Get(t *testing.T) {
	mockBuilds := new(MockBuildRepository)
	mockUsers := new(MockUserRepository)
	service := NewBuildService(mockBuilds, mockUsers, nil)

	stored := &model.Build{ID: 7, Name: "Moonveil Samurai", Intelligence: 60, UserID: 42}
	mockBuilds.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
	mockBuilds.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

	build, err := service.Get(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, stored, build)

	build, err = service.Get(context.Background(), 8)
	assert.Equal(t, errors.ErrBuildNotFound, err)
	assert.Nil(t, build)

	mockBuilds.AssertExpectations(t)
}

func TestBuildService_List(t *testing.T) {
	mockBuilds := new(MockBuildRepository)
	service := NewBuildService(mockBuilds, new(MockUserRepository), nil)

	// newest first, as the repository orders them
	builds := []model.Build{{ID: 3}, {ID: 2}, {ID: 1}}
	mockBuilds.On("List", mock.Anything).Return(builds, nil)

	got, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, builds, got)
	assert.Equal(t, uint(3), got[0].ID)

	mockBuilds.AssertExpectations(t)
}

func TestBuildService_Update(t *testing.T) {
	owned := &model.Build{ID: 7, Name: "Moonveil Samurai", UserID: 42}
	fields := map[string]interface{}{"vigor": 40}

	tests := []struct {
		name          string
		id            uint
		ownerID       uint
		setupMock     func(*MockBuildRepository)
		expectedError error
	}{
		{
			name:    "successful update",
			id:      7,
			ownerID: 42,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(owned, nil)
				m.On("UpdateFields", mock.Anything, uint(7), fields).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name:    "build not found",
			id:      8,
			ownerID: 42,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBuildNotFound,
		},
		{
			name:    "not the owner",
			id:      7,
			ownerID: 1,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(owned, nil)
			},
			expectedError: errors.ErrNotBuildOwner,
		},
		{
			name:    "row vanished before the write",
			id:      7,
			ownerID: 42,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(owned, nil)
				m.On("UpdateFields", mock.Anything, uint(7), fields).Return(int64(0), nil)
			},
			expectedError: errors.ErrBuildNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBuilds := new(MockBuildRepository)
			tt.setupMock(mockBuilds)

			service := NewBuildService(mockBuilds, new(MockUserRepository), nil)
			err := service.Update(context.Background(), tt.id, tt.ownerID, fields)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockBuilds.AssertExpectations(t)
		})
	}
}

func TestBuildService_Delete(t *testing.T) {
	owned := &model.Build{ID: 7, Name: "Moonveil Samurai", UserID: 42}

	tests := []struct {
		name          string
		id            uint
		ownerID       uint
		setupMock     func(*MockBuildRepository)
		expectedError error
	}{
		{
			name:    "successful delete",
			id:      7,
			ownerID: 42,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(owned, nil)
				m.On("Delete", mock.Anything, uint(7)).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name:    "build not found",
			id:      8,
			ownerID: 42,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBuildNotFound,
		},
		{
			name:    "not the owner",
			id:      7,
			ownerID: 1,
			setupMock: func(m *MockBuildRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(owned, nil)
			},
			expectedError: errors.ErrNotBuildOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBuilds := new(MockBuildRepository)
			tt.setupMock(mockBuilds)

			service := NewBuildService(mockBuilds, new(MockUserRepository), nil)
			err := service.Delete(context.Background(), tt.id, tt.ownerID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockBuilds.AssertExpectations(t)
		})
	}
}
