package sql

import (
	"context"
	"fmt"
	"strings"

	"nexoformar/internal/entity"

	"gorm.io/gorm"
)

// CreateCourse persists a new course.
func (r *GormRepository) CreateCourse(ctx context.Context, course *entity.DbCourse) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if course == nil {
		return fmt.Errorf("course is nil")
	}
	return r.db.WithContext(ctx).Create(course).Error
}

// UpdateCourse applies a partial update to an existing course.
func (r *GormRepository) UpdateCourse(ctx context.Context, id uint, updates entity.CourseUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid course id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbCourse{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// GetCourse loads a course with its owner and category. Soft-deleted rows
// are excluded by GORM's default scope.
func (r *GormRepository) GetCourse(ctx context.Context, id uint) (*entity.DbCourse, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid course id")
	}
	var course entity.DbCourse
	if err := r.db.WithContext(ctx).Preload("Owner").Preload("Category").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// SearchCourses returns courses matching the query, newest first, with the
// total match count for pagination.
func (r *GormRepository) SearchCourses(ctx context.Context, query *entity.CourseQuery) ([]entity.DbCourse, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repository not initialised")
	}

	tx := r.db.WithContext(ctx).Model(&entity.DbCourse{})
	if query != nil {
		if len(query.CategoryIDs) > 0 {
			tx = tx.Where("category_id IN ?", query.CategoryIDs)
		}
		if query.OwnerID != 0 {
			tx = tx.Where("owner_id = ?", query.OwnerID)
		}
		if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Preload("Owner").Preload("Category").Order("published_at DESC")
	if query != nil && query.Limit > 0 {
		offset := query.Offset
		if offset < 0 {
			offset = 0
		}
		tx = tx.Offset(offset).Limit(query.Limit)
	}

	var courses []entity.DbCourse
	if err := tx.Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// SoftDeleteCourse marks a course deleted without removing the row.
func (r *GormRepository) SoftDeleteCourse(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid course id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbCourse{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
