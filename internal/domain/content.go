package domain

import "time"

// Notice is an admin-posted announcement. Append history, newest first.
type Notice struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36" json:"-"`
	Title   string `gorm:"size:191;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Notice) TableName() string { return "notices" }

// Event is an archived past gathering. Images holds a JSON array of URLs.
type Event struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string `gorm:"size:36" json:"-"`
	Title       string `gorm:"size:191;not null" json:"title"`
	Date        string `gorm:"size:10;index" json:"date"`
	Location    string `gorm:"size:191" json:"location"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Images      string `gorm:"type:text" json:"-"`
	Status      string `gorm:"size:16" json:"status"`

	// ImageList is the wire shape of Images; the content hooks serialize
	// it on write and decode it on read.
	ImageList []string `gorm:"-" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

// SiteConfig is a single-row-per-key record; the app only uses "default".
type SiteConfig struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	PrimaryColor string `gorm:"size:16" json:"primaryColor"`
	AccentColor  string `gorm:"size:16" json:"accentColor"`
	FontFamily   string `gorm:"size:32" json:"fontFamily"`
	Layout       string `gorm:"size:32" json:"layout"`
	MainTitle    string `gorm:"size:191" json:"mainTitle"`
	SubTitle     string `gorm:"size:191" json:"subTitle"`
	HeroTitle    string `gorm:"size:191" json:"heroTitle"`
	HeroSubtitle string `gorm:"size:191" json:"heroSubtitle"`
	HeroText     string `gorm:"type:text" json:"heroText"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SiteConfig) TableName() string { return "site_configs" }

const SiteConfigDefaultID = "default"

// DefaultSiteConfig seeds the row returned by the first config read.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		ID:           SiteConfigDefaultID,
		PrimaryColor: "#1e3820",
		AccentColor:  "#ff0072",
		FontFamily:   "sans",
		Layout:       "sidebar",
		MainTitle:    "バース人材",
		SubTitle:     "飲み会",
		HeroTitle:    "25年3月29日に飲み会",
		HeroSubtitle: "決定",
		HeroText:     "一緒に素敵な思い出作りませんか？\n25年3月29日にお待ちしております",
	}
}
