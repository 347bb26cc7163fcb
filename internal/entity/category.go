package entity

// DbCategory groups courses under a shared label.
type DbCategory struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
}

// TableName overrides the default pluralised name.
func (DbCategory) TableName() string {
	return "categories"
}

// Category is the category shape returned to clients.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryCreateRequest is the payload for creating a category.
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryUpdateRequest carries optional fields for a partial update.
type CategoryUpdateRequest struct {
	Name *string `json:"name,omitempty"`
}

// CategoryListResponse wraps a category list.
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}
