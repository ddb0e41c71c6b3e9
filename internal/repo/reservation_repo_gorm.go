package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"enkai-reserve/internal/domain"
)

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Upsert writes on the natural (user_id, reservation_item_id) key.
// Concurrent writes for the same pair collapse into one row at the store.
func (r *ReservationRepo) Upsert(res *domain.Reservation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "reservation_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "available_dates", "message", "created_at", "updated_at",
		}),
	}).Create(res).Error
}

func (r *ReservationRepo) ListByUser(userID string) ([]domain.Reservation, error) {
	var rows []domain.Reservation
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error
	return rows, err
}

func (r *ReservationRepo) ListAll() ([]domain.Reservation, error) {
	var rows []domain.Reservation
	err := r.db.Order("created_at desc").Find(&rows).Error
	return rows, err
}

func (r *ReservationRepo) DeleteByUserAndItem(userID, itemID string) (int64, error) {
	res := r.db.Where("user_id = ? AND reservation_item_id = ?", userID, itemID).
		Delete(&domain.Reservation{})
	return res.RowsAffected, res.Error
}

func (r *ReservationRepo) DeleteByItem(itemID string) error {
	return r.db.Where("reservation_item_id = ?", itemID).Delete(&domain.Reservation{}).Error
}

var _ domain.ReservationRepository = (*ReservationRepo)(nil)
