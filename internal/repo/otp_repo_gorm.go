package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
)

type OTPRepo struct{ db *gorm.DB }

func NewOTPRepo(db *gorm.DB) *OTPRepo { return &OTPRepo{db: db} }

// Replace enforces at-most-one-live-code-per-email by delete-then-create.
func (r *OTPRepo) Replace(c *domain.OneTimeCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", c.Email).Delete(&domain.OneTimeCode{}).Error; err != nil {
			return err
		}
		return tx.Create(c).Error
	})
}

func (r *OTPRepo) Consume(email, code string, now time.Time) (*domain.OneTimeCode, error) {
	var otp domain.OneTimeCode
	err := r.db.Where("email = ? AND code = ? AND expires_at > ?", email, code, now).
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&domain.OneTimeCode{}, "id = ?", otp.ID).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

var _ domain.OneTimeCodeRepository = (*OTPRepo)(nil)
