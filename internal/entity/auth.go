package entity

import "time"

// DbVerificationCode is a pending one-time code tied to an email address.
// The email is deliberately not a foreign key: registration codes exist
// before the user row does.
type DbVerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `gorm:"column:email;type:varchar(255);index;not null" json:"email"`
	CodeHash  string    `gorm:"column:code_hash;type:varchar(255);not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

// TableName keeps the historical table name.
func (DbVerificationCode) TableName() string {
	return "verification_codes"
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest creates an account directly, without a code.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RequestCodeRequest asks for a registration or recovery code.
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmRegisterRequest completes a code-confirmed registration.
type ConfirmRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Code     string `json:"code" binding:"required,len=6"`
}

// ResetPasswordRequest sets a new password using a recovery code.
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=6"`
}

// SessionResponse is returned after any successful authentication.
type SessionResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Name        string    `json:"name"`
}
