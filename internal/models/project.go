package models

import "time"

// Project owns its tech stacks and screenshots. Both child collections are
// authoritative on every update: the stored sets are replaced wholesale,
// never merged. Category is a closed set enforced by the request schemas.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"type:varchar(32);not null" json:"category"`
	Link        string    `gorm:"not null" json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	TechStacks  []TechStack  `gorm:"constraint:OnDelete:CASCADE" json:"techStacks,omitempty"`
	Screenshots []Screenshot `gorm:"constraint:OnDelete:CASCADE" json:"screenshots,omitempty"`
	Comments    []Comment    `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	// Populated by the list query only; not a column.
	CommentCount int64 `gorm:"-" json:"commentCount"`
}

type TechStack struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Category  string `gorm:"type:varchar(32);not null" json:"category"`
	Skill     string `gorm:"not null" json:"skill"`
	ProjectID uint   `gorm:"index;not null" json:"projectId"`
}

type Screenshot struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	URL       string `gorm:"not null" json:"url"`
	ProjectID uint   `gorm:"index;not null" json:"projectId"`
}

// Comment is left by anonymous visitors against a project.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ProjectID uint      `gorm:"index;not null" json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
}

// DownloadLog is a write-only audit record; it has no relations and is
// never updated or read back through the API.
type DownloadLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FileURL   string    `gorm:"not null" json:"fileUrl"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}
