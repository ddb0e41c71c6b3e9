package domain

import "time"

// ReservationItem is a schedulable event window ("project"): users pick
// dates inside [StartDate, EndDate]. Dates are stored as yyyy-MM-dd strings.
type ReservationItem struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:191;not null" json:"title"`
	StartDate   string `gorm:"size:10;index;not null" json:"startDate"`
	EndDate     string `gorm:"size:10;not null" json:"endDate"`
	Deadline    string `gorm:"size:10" json:"deadline"`
	StartTime   string `gorm:"size:8" json:"startTime"`
	Location    string `gorm:"size:191" json:"location"`
	ShopName    string `gorm:"size:191" json:"shopName"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ReservationItem) TableName() string { return "reservation_items" }

type ReservationItemRepository interface {
	Create(p *ReservationItem) error
	FindByID(id string) (*ReservationItem, error)
	// ListActive returns active projects in ascending StartDate order.
	ListActive() ([]ReservationItem, error)
	ListAll() ([]ReservationItem, error)
	Update(p *ReservationItem) error
	Delete(id string) error
}
