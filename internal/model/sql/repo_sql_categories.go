package sql

import (
	"context"
	"fmt"

	"nexoformar/internal/entity"

	"gorm.io/gorm"
)

// CreateCategory persists a new category.
func (r *GormRepository) CreateCategory(ctx context.Context, category *entity.DbCategory) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateCategory applies a partial update to an existing category.
func (r *GormRepository) UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbCategory{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// GetCategory loads a category by ID.
func (r *GormRepository) GetCategory(ctx context.Context, id uint) (*entity.DbCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid category id")
	}
	var category entity.DbCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories ordered by ID.
func (r *GormRepository) ListCategories(ctx context.Context) ([]entity.DbCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var categories []entity.DbCategory
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes a category by ID.
func (r *GormRepository) DeleteCategory(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountCoursesByCategory counts courses referencing a category, including
// soft-deleted ones whose rows still hold the reference.
func (r *GormRepository) CountCoursesByCategory(ctx context.Context, categoryID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if categoryID == 0 {
		return 0, fmt.Errorf("invalid category id")
	}
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.DbCourse{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
