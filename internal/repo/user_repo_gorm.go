package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"enkai-reserve/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

// FindByLogin accepts either the email or the username.
func (r *UserRepo) FindByLogin(login string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ? OR username = ?", login, login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List(offset, limit int) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) ListSubscribed() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Where("is_subscribed = ?", true).Find(&users).Error
	return users, err
}

func (r *UserRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.User{}).Error
}

var _ domain.UserRepository = (*UserRepo)(nil)
