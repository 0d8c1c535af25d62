package repository

import (
	"context"

	"gorm.io/gorm"

	"eldenbuilds/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateProfile overwrites the mutable profile fields of the user
	// with the given email. Returns the number of rows matched.
	UpdateProfile(ctx context.Context, email, username, photo string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, email, username, photo string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"username": username,
			"photo":    photo,
		})
	return res.RowsAffected, res.Error
}
