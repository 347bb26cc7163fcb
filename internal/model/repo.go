package model

import (
	"context"

	"nexoformar/internal/entity"
)

// Repository defines the persistence operations used by the services.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// One-time verification codes
	ReplaceCode(ctx context.Context, code *entity.DbVerificationCode) error
	GetCodeByEmail(ctx context.Context, email string) (*entity.DbVerificationCode, error)
	DeleteCode(ctx context.Context, id uint) error

	// Courses
	CreateCourse(ctx context.Context, course *entity.DbCourse) error
	UpdateCourse(ctx context.Context, id uint, updates entity.CourseUpdates) error
	GetCourse(ctx context.Context, id uint) (*entity.DbCourse, error)
	SearchCourses(ctx context.Context, query *entity.CourseQuery) ([]entity.DbCourse, int64, error)
	SoftDeleteCourse(ctx context.Context, id uint) error

	// Categories
	CreateCategory(ctx context.Context, category *entity.DbCategory) error
	UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error
	GetCategory(ctx context.Context, id uint) (*entity.DbCategory, error)
	ListCategories(ctx context.Context) ([]entity.DbCategory, error)
	DeleteCategory(ctx context.Context, id uint) error
	CountCoursesByCategory(ctx context.Context, categoryID uint) (int64, error)
}
