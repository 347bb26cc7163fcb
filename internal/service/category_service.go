package service

import (
	"context"
	"errors"
	"strings"

	"nexoformar/internal/entity"
	"nexoformar/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategoryService implements category CRUD. Deletion is blocked while any
// course still references the category.
type CategoryService struct {
	repo model.Repository
}

// NewCategoryService creates the category service.
func NewCategoryService(repo model.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create stores a new category. The name is trimmed and must not end up
// empty.
func (s *CategoryService) Create(ctx context.Context, req entity.CategoryCreateRequest) (entity.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.Category{}, ErrBadRequest("name is required")
	}

	category := &entity.DbCategory{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return entity.Category{}, ErrInternal("failed to create category", err)
	}
	return entity.Category{ID: category.ID, Name: category.Name}, nil
}

// FindAll lists every category ordered by ID.
func (s *CategoryService) FindAll(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, ErrInternal("failed to list categories", err)
	}
	items := make([]entity.Category, 0, len(categories))
	for _, category := range categories {
		items = append(items, entity.Category{ID: category.ID, Name: category.Name})
	}
	return items, nil
}

// FindOne loads a single category.
func (s *CategoryService) FindOne(ctx context.Context, id uint) (entity.Category, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return entity.Category{}, err
	}
	return entity.Category{ID: category.ID, Name: category.Name}, nil
}

// Update applies a partial update and returns the refreshed category.
func (s *CategoryService) Update(ctx context.Context, id uint, req entity.CategoryUpdateRequest) (entity.Category, error) {
	if _, err := s.getCategory(ctx, id); err != nil {
		return entity.Category{}, err
	}

	updates := entity.CategoryUpdates{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return entity.Category{}, ErrBadRequest("name is required")
		}
		updates.Name = &name
	}

	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		return entity.Category{}, ErrInternal("failed to update category", err)
	}
	return s.FindOne(ctx, id)
}

// Remove deletes a category. Courses keep their category reference even
// when soft-deleted, so any referencing course blocks the deletion.
func (s *CategoryService) Remove(ctx context.Context, id uint) error {
	if _, err := s.getCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountCoursesByCategory(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("category_id", id).Error("failed to count category references")
		return ErrInternal("unexpected error deleting category", err)
	}
	if count > 0 {
		return ErrBadRequest("cannot delete the category because it has associated courses")
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrBadRequest("cannot delete the category because it has associated courses")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("category not found")
		}
		logrus.WithError(err).WithField("category_id", id).Error("unexpected error deleting category")
		return ErrInternal("unexpected error deleting category", err)
	}
	return nil
}

func (s *CategoryService) getCategory(ctx context.Context, id uint) (*entity.DbCategory, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("category not found")
		}
		return nil, ErrInternal("failed to load category", err)
	}
	return category, nil
}
