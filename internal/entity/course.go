package entity

import (
	"time"

	"gorm.io/gorm"
)

// DbCourse represents a published course. Deletion is a soft delete so the
// row keeps its owner and category references.
type DbCourse struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OwnerID     uint           `gorm:"column:owner_id;index;not null" json:"-"`
	Owner       *DbUser        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Images      StringArray    `gorm:"column:images;type:text" json:"images"`
	Link        string         `gorm:"column:link;type:text;not null" json:"link"`
	CategoryID  uint           `gorm:"column:category_id;index;not null" json:"-"`
	Category    *DbCategory    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PublishedAt time.Time      `gorm:"column:published_at;autoCreateTime" json:"published_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName overrides the default pluralised name.
func (DbCourse) TableName() string {
	return "courses"
}

// CourseCreateRequest is the payload for publishing a course.
type CourseCreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Images      []string `json:"images"`
	Link        string   `json:"link" binding:"required,url"`
	CategoryID  uint     `json:"category_id" binding:"required"`
}

// CourseUpdateRequest carries optional fields for a partial update.
// Ownership is never reassignable through this payload.
type CourseUpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Link        *string   `json:"link,omitempty"`
	CategoryID  *uint     `json:"category_id,omitempty"`
}

// CourseSearchFilter holds the raw search inputs from the query string.
type CourseSearchFilter struct {
	CategoryIDs string `form:"categoria_id"`
	Keywords    string `form:"keywords"`
	PageParams
}

// CourseQuery is the resolved repository-level course filter. A zero
// Limit disables pagination.
type CourseQuery struct {
	CategoryIDs []uint
	OwnerID     uint
	Keyword     string
	Offset      int
	Limit       int
}

// CourseItem is the course shape returned to clients.
type CourseItem struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Images      []string    `json:"images"`
	Link        string      `json:"link"`
	PublishedAt time.Time   `json:"published_at"`
	Owner       UserSummary `json:"owner"`
	Category    Category    `json:"category"`
}

// CourseListResponse wraps a plain course list.
type CourseListResponse struct {
	Courses []CourseItem `json:"courses"`
}

// CoursePageResponse wraps a paginated course list.
type CoursePageResponse struct {
	Courses []CourseItem `json:"courses"`
	Meta    *Meta        `json:"meta"`
}
