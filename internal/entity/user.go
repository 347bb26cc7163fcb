package entity

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleNormal Role = "NORMAL"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole maps a raw string onto a known role.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleNormal:
		return RoleNormal, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Status is the closed set of user account states.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBanned   Status = "BANNED"
)

// ParseStatus maps a raw string onto a known status.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusBanned:
		return StatusBanned, true
	default:
		return "", false
	}
}

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	PhotoURL     string    `gorm:"column:photo_url;type:text" json:"photo_url,omitempty"`
	Role         Role      `gorm:"column:role;type:varchar(20);index;not null" json:"role"`
	Status       Status    `gorm:"column:status;type:varchar(20);not null" json:"status"`
}

// TableName overrides the default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserSummary is the user shape returned to clients, without credentials.
type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest changes the caller's own name and/or photo.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// ChangeRoleRequest is the admin payload for reassigning a role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeStatusRequest is the admin payload for toggling account status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
