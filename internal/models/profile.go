package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds a profile's optional social network URLs.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile represents a developer profile. Exactly one per user.
type Profile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user"`
	Status         string         `gorm:"not null" json:"status"`
	Skills         []string       `gorm:"serializer:json" json:"skills"`
	Company        string         `json:"company,omitempty"`
	Website        string         `json:"website,omitempty"`
	Location       string         `json:"location,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	GithubUsername string         `json:"githubusername,omitempty"`
	Social         SocialLinks    `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience   `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education    `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Experience is a work history entry on a profile. Entries are listed
// most-recent-first and removed by their own ID.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"index;not null" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a schooling entry on a profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"index;not null" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
