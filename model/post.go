package model

import (
	"time"

	"github.com/lib/pq"
)

// Post represents a piece of user-authored content. Posts are soft-deleted:
// delete flips the flag and records the timestamp, restore reverses it.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	AuthorID uint    `gorm:"not null;index" json:"authorId"`
	Author   *Person `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Tags  pq.StringArray `gorm:"type:text[]" json:"tags"`
	Media []Storage      `gorm:"many2many:post_media" json:"media,omitempty"`

	Likes    int `gorm:"not null;default:0" json:"likes"`
	Dislikes int `gorm:"not null;default:0" json:"dislikes"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	Deleted   bool       `gorm:"not null;default:false;index" json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SoftDelete marks the post deleted at the given time and returns the column
// updates to persist. A post that is already deleted returns nil: deleting
// twice must not mutate the record again.
func (p *Post) SoftDelete(now time.Time) map[string]interface{} {
	if p.Deleted {
		return nil
	}
	p.Deleted = true
	p.DeletedAt = &now
	return map[string]interface{}{"deleted": true, "deleted_at": now}
}

// Restore clears the deleted state and returns the column updates to persist.
// Restoring a post that is not deleted is an invalid transition and returns nil.
func (p *Post) Restore() map[string]interface{} {
	if !p.Deleted {
		return nil
	}
	p.Deleted = false
	p.DeletedAt = nil
	return map[string]interface{}{"deleted": false, "deleted_at": nil}
}

// Comment is a reply attached to a post
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PostID   uint    `gorm:"not null;index" json:"postId"`
	AuthorID uint    `gorm:"not null;index" json:"authorId"`
	Author   *Person `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string  `gorm:"type:text;not null" json:"content"`
}
