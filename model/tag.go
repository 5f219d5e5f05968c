package model

import "time"

// Tag labels items, posts and assignatures with a color and optional media
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TagName     string `gorm:"uniqueIndex;not null" json:"tagName"`
	Description string `gorm:"type:text;not null" json:"description"`
	Color       string `gorm:"not null" json:"color"`

	MediaID *uint    `json:"mediaId,omitempty"`
	Media   *Storage `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}
