package sql

import (
	"context"
	"fmt"
	"strings"

	"nexoformar/internal/entity"

	"gorm.io/gorm"
)

// ReplaceCode removes any prior code for the email and stores the new one.
// Both steps run in one transaction so concurrent issuance cannot leave
// two usable codes for the same address.
func (r *GormRepository) ReplaceCode(ctx context.Context, code *entity.DbVerificationCode) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if code == nil || strings.TrimSpace(code.Email) == "" {
		return fmt.Errorf("invalid verification code")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", code.Email).Delete(&entity.DbVerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// GetCodeByEmail loads the pending code for an email, if any.
func (r *GormRepository) GetCodeByEmail(ctx context.Context, email string) (*entity.DbVerificationCode, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}
	var code entity.DbVerificationCode
	if err := r.db.WithContext(ctx).Where("email = ?", trimmed).First(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// DeleteCode removes a code row by ID.
func (r *GormRepository) DeleteCode(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid code id")
	}
	return r.db.WithContext(ctx).Delete(&entity.DbVerificationCode{}, id).Error
}
