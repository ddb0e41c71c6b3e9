package domain

import "time"

// Reservation is one submission of selected dates for a project.
// AvailableDates holds a JSON array of yyyy-MM-dd strings; parsing lives in
// the reservation package so every boundary round-trips the same way.
// (user_id, reservation_item_id) is unique: writes upsert on that key.
type Reservation struct {
	ID                string `gorm:"primaryKey;size:36" json:"id"`
	UserID            string `gorm:"size:36;not null;uniqueIndex:uq_user_item" json:"userId"`
	ReservationItemID string `gorm:"size:36;not null;uniqueIndex:uq_user_item" json:"reservationItemId"`
	Name              string `gorm:"size:128" json:"name"`
	AvailableDates    string `gorm:"type:text;not null" json:"-"`
	Message           string `gorm:"type:text" json:"message,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Reservation) TableName() string { return "reservations" }

// UserActivity counts reservation writes per user per calendar day.
// Day is yyyy-MM-dd; a new day means a new row, old rows are never reset.
type UserActivity struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	Day       string    `gorm:"primaryKey;size:10"`
	Count     int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserActivity) TableName() string { return "user_activities" }

type ReservationRepository interface {
	// Upsert writes the row for (UserID, ReservationItemID), overwriting
	// dates, message and name when the pair already exists.
	Upsert(r *Reservation) error
	ListByUser(userID string) ([]Reservation, error)
	ListAll() ([]Reservation, error)
	DeleteByUserAndItem(userID, itemID string) (int64, error)
	DeleteByItem(itemID string) error
}
