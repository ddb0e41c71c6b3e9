package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role is validated once where a session token is parsed; handlers only
// ever see one of these two values.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"uniqueIndex;size:191" json:"email"`
	Username     string `gorm:"index;size:64" json:"username"`
	FirstName    string `gorm:"size:64" json:"firstName"`
	LastName     string `gorm:"size:64" json:"lastName"`
	Name         string `gorm:"size:128" json:"name"`
	PasswordHash string `gorm:"size:191" json:"-"`
	Role         Role   `gorm:"size:16;not null;default:user" json:"role"`
	IsSubscribed bool   `gorm:"not null;default:false" json:"isSubscribed"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// DisplayName is what the attendee board and emails show.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByLogin(login string) (*User, error)
	List(offset, limit int) ([]User, int64, error)
	CountCreatedSince(t time.Time) (int64, error)
	Update(u *User) error
	ListSubscribed() ([]User, error)
	Delete(id string) error
}
