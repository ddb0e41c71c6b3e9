package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"enkai-reserve/internal/domain"
)

type ActivityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) Count(userID, day string) (int, error) {
	var a domain.UserActivity
	err := r.db.First(&a, "user_id = ? AND day = ?", userID, day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return a.Count, err
}

// TryIncrement bumps the (userID, day) counter unless it already reached
// limit. The bump is a single conditional UPDATE after an insert-if-absent,
// so two concurrent writers cannot both pass the limit check.
func (r *ActivityRepo) TryIncrement(userID, day string, limit int) (bool, error) {
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.UserActivity{UserID: userID, Day: day, Count: 0}).Error
	if err != nil {
		return false, err
	}
	res := r.db.Model(&domain.UserActivity{}).
		Where("user_id = ? AND day = ? AND count < ?", userID, day, limit).
		UpdateColumn("count", gorm.Expr("count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
