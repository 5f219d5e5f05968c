package model

import "time"

// ItemTypes is the closed set of content types an item may have
var ItemTypes = []string{"project", "notebook", "flashcard", "presentation", "book", "article", "research", "podcast", "video", "other"}

// Item represents a piece of study material or a project shared on the platform
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TagName     string `gorm:"not null" json:"tagName"`
	Type        string `gorm:"not null;default:'project'" json:"type"`
	Description string `gorm:"type:text;not null" json:"description"`

	Media []Storage `gorm:"many2many:item_media" json:"media,omitempty"`

	Repo   string `json:"repo"`
	Deploy string `json:"deploy"`

	Likes    int `gorm:"not null;default:0" json:"likes"`
	Dislikes int `gorm:"not null;default:0" json:"dislikes"`

	Feedbacks []Post `gorm:"many2many:item_feedbacks" json:"feedbacks,omitempty"`
	Tags      []Tag  `gorm:"many2many:item_tags" json:"tags,omitempty"`
}

// IsValidItemType reports whether t belongs to the closed item type set
func IsValidItemType(t string) bool {
	for _, v := range ItemTypes {
		if v == t {
			return true
		}
	}
	return false
}
