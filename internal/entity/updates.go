package entity

// UserUpdates holds the user fields a partial update may touch.
type UserUpdates struct {
	Name         *string
	PhotoURL     *string
	PasswordHash *string
	Role         *Role
	Status       *Status
}

// ToMap converts to a GORM updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.PhotoURL != nil {
		updates["photo_url"] = *u.PhotoURL
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// CourseUpdates holds the course fields a partial update may touch.
// The owner column is intentionally absent.
type CourseUpdates struct {
	Title       *string
	Description *string
	Images      *StringArray
	Link        *string
	CategoryID  *uint
}

// ToMap converts to a GORM updates map.
func (u CourseUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Images != nil {
		updates["images"] = *u.Images
	}
	if u.Link != nil {
		updates["link"] = *u.Link
	}
	if u.CategoryID != nil {
		updates["category_id"] = *u.CategoryID
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u CourseUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// CategoryUpdates holds the category fields a partial update may touch.
type CategoryUpdates struct {
	Name *string
}

// ToMap converts to a GORM updates map.
func (u CategoryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u CategoryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
