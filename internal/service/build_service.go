package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eldenbuilds/internal/cache"
	"eldenbuilds/internal/errors"
	"eldenbuilds/internal/model"
	"eldenbuilds/internal/repository"
)

const (
	buildCacheTTL     = 5 * time.Minute
	buildListCacheTTL = time.Minute
	buildListCacheKey = "builds:all"
)

// BuildService handles build CRUD operations.
type BuildService interface {
	Create(ctx context.Context, build *model.Build) (*model.Build, error)
	List(ctx context.Context) ([]model.Build, error)
	Get(ctx context.Context, id uint) (*model.Build, error)
	Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id, ownerID uint) error
}

type buildService struct {
	buildRepo repository.BuildRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
}

// NewBuildService creates a new build service.
func NewBuildService(buildRepo repository.BuildRepository, userRepo repository.UserRepository, cache *cache.Client) BuildService {
	return &buildService{
		buildRepo: buildRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

func (s *buildService) cacheKey(id uint) string {
	return fmt.Sprintf("build:%d", id)
}

// Create inserts a new build owned by build.UserID. The owner must
// resolve to an existing user; unset stats keep their zero defaults.
func (s *buildService) Create(ctx context.Context, build *model.Build) (*model.Build, error) {
	if _, err := s.userRepo.FindByID(ctx, build.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	if err := s.buildRepo.Create(ctx, build); err != nil {
		return nil, fmt.Errorf("create build: %w", err)
	}

	_ = s.cache.Delete(ctx, buildListCacheKey)
	return build, nil
}

// List returns all builds, newest first.
func (s *buildService) List(ctx context.Context) ([]model.Build, error) {
	var cached []model.Build
	if s.cache.GetJSON(ctx, buildListCacheKey, &cached) {
		return cached, nil
	}

	builds, err := s.buildRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}

	s.cache.SetJSON(ctx, buildListCacheKey, builds, buildListCacheTTL)
	return builds, nil
}

// Get retrieves a single build by id.
func (s *buildService) Get(ctx context.Context, id uint) (*model.Build, error) {
	var cached model.Build
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	build, err := s.buildRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBuildNotFound
		}
		return nil, fmt.Errorf("find build: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), build, buildCacheTTL)
	return build, nil
}

// Update overwrites only the named fields. Mutation is restricted to
// the build's owner.
func (s *buildService) Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error {
	build, err := s.buildRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBuildNotFound
		}
		return fmt.Errorf("find build: %w", err)
	}
	if build.UserID != ownerID {
		return errors.ErrNotBuildOwner
	}

	if len(fields) == 0 {
		return nil
	}

	rows, err := s.buildRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("update build: %w", err)
	}
	if rows == 0 {
		// deleted between the lookup and the write
		return errors.ErrBuildNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id), buildListCacheKey)
	return nil
}

// Delete removes the build. Mutation is restricted to the build's
// owner.
func (s *buildService) Delete(ctx context.Context, id, ownerID uint) error {
	build, err := s.buildRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBuildNotFound
		}
		return fmt.Errorf("find build: %w", err)
	}
	if build.UserID != ownerID {
		return errors.ErrNotBuildOwner
	}

	rows, err := s.buildRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete build: %w", err)
	}
	if rows == 0 {
		return errors.ErrBuildNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id), buildListCacheKey)
	return nil
}
