package models

import "time"

// User is the single admin row. It is provisioned out-of-band (seed
// command), never through the authenticated flow.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Resume    string    `json:"resume"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PhoneNumbers []PhoneNumber `gorm:"constraint:OnDelete:CASCADE" json:"phoneNumbers,omitempty"`
	SocialLinks  []SocialLink  `gorm:"constraint:OnDelete:CASCADE" json:"socialLinks,omitempty"`
	Skills       []Skill       `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

// PhoneNumber is owned by exactly one user; mutations require the owner.
type PhoneNumber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"not null" json:"number"`
	Type      string    `json:"type,omitempty"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SocialLink is owned by exactly one user; mutations require the owner.
type SocialLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Platform  string    `gorm:"type:varchar(32);not null" json:"platform"`
	URL       string    `gorm:"not null" json:"url"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Skill is owned by exactly one user.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"skill"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
