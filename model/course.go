package model

import (
	"time"

	"github.com/lib/pq"
)

// Course represents an academic program. Abbr is always stored upper-cased
// so abbreviation lookups are case-insensitive.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Curso     string         `gorm:"uniqueIndex;not null" json:"curso"`
	Anos      int            `gorm:"not null" json:"anos"`
	Abbr      string         `gorm:"not null" json:"abbr"`
	Variacoes pq.StringArray `gorm:"type:text[]" json:"variacoes"`
}
