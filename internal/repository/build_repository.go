package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"eldenbuilds/internal/model"
)

// BuildRepository defines build persistence operations.
type BuildRepository interface {
	Create(ctx context.Context, build *model.Build) error
	FindByID(ctx context.Context, id uint) (*model.Build, error)
	FindByName(ctx context.Context, name string) (*model.Build, error)
	// List returns all builds, most recently created first.
	List(ctx context.Context) ([]model.Build, error)
	// UpdateFields writes only the given columns. Returns the number of
	// rows matched so callers can distinguish a missing build.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	// Delete removes the build. Returns the number of rows deleted.
	Delete(ctx context.Context, id uint) (int64, error)
	Save(ctx context.Context, build *model.Build) error
}

type buildRepository struct {
	db *gorm.DB
}

// NewBuildRepository builds a GORM-backed repository.
func NewBuildRepository(db *gorm.DB) BuildRepository {
	return &buildRepository{db: db}
}

func (r *buildRepository) Create(ctx context.Context, build *model.Build) error {
	return r.db.WithContext(ctx).Create(build).Error
}

func (r *buildRepository) FindByID(ctx context.Context, id uint) (*model.Build, error) {
	var build model.Build
	if err := r.db.WithContext(ctx).First(&build, id).Error; err != nil {
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) FindByName(ctx context.Context, name string) (*model.Build, error) {
	var build model.Build
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&build).Error; err != nil {
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) List(ctx context.Context) ([]model.Build, error) {
	var builds []model.Build
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&builds).Error; err != nil {
		return nil, err
	}
	return builds, nil
}

func (r *buildRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	// map updates bypass the model's JSON serializer
	if items, ok := fields["showcase_items"].([]string); ok {
		encoded, err := json.Marshal(items)
		if err != nil {
			return 0, err
		}
		fields["showcase_items"] = string(encoded)
	}
	res := r.db.WithContext(ctx).Model(&model.Build{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *buildRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Build{}, id)
	return res.RowsAffected, res.Error
}

func (r *buildRepository) Save(ctx context.Context, build *model.Build) error {
	return r.db.WithContext(ctx).Save(build).Error
}
