package repo

import (
	"errors"

	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) Create(p *domain.ReservationItem) error { return r.db.Create(p).Error }

func (r *ProjectRepo) FindByID(id string) (*domain.ReservationItem, error) {
	var p domain.ReservationItem
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProjectRepo) ListActive() ([]domain.ReservationItem, error) {
	var items []domain.ReservationItem
	err := r.db.Where("is_active = ?", true).Order("start_date asc").Find(&items).Error
	return items, err
}

func (r *ProjectRepo) ListAll() ([]domain.ReservationItem, error) {
	var items []domain.ReservationItem
	err := r.db.Order("start_date asc").Find(&items).Error
	return items, err
}

func (r *ProjectRepo) Update(p *domain.ReservationItem) error { return r.db.Save(p).Error }

func (r *ProjectRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.ReservationItem{}).Error
}

var _ domain.ReservationItemRepository = (*ProjectRepo)(nil)
