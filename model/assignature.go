package model

import (
	"time"

	"github.com/lib/pq"
)

// AssignatureTypes is the closed set of education levels an assignature may have
var AssignatureTypes = []string{"superior", "ensino médio", "EAD", "ensino fundamental", "infantil", "pós-graduação", "MBA", "master", "curso", "técnico", "certificação", "other"}

// Assignature represents a taught subject across one or more institutions.
// Module, task and classroom references point at externally managed records.
type Assignature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TagName     string `gorm:"not null" json:"tagName"`
	Type        string `gorm:"not null;default:'superior'" json:"type"`
	Description string `gorm:"type:text;not null" json:"description"`

	Media []Storage `gorm:"many2many:assignature_media" json:"media,omitempty"`

	ModuleIDs    pq.Int64Array `gorm:"type:bigint[]" json:"moduleIds"`
	TaskIDs      pq.Int64Array `gorm:"type:bigint[]" json:"taskIds"`
	ClassroomIDs pq.Int64Array `gorm:"type:bigint[]" json:"classroomIds"`

	Institutions []Institution `gorm:"many2many:assignature_institutions" json:"institutions,omitempty"`

	Likes    int `gorm:"not null;default:0" json:"likes"`
	Dislikes int `gorm:"not null;default:0" json:"dislikes"`

	Feedbacks []Post `gorm:"many2many:assignature_feedbacks" json:"feedbacks,omitempty"`
	Tags      []Tag  `gorm:"many2many:assignature_tags" json:"tags,omitempty"`
}

// IsValidAssignatureType reports whether t belongs to the closed type set
func IsValidAssignatureType(t string) bool {
	for _, v := range AssignatureTypes {
		if v == t {
			return true
		}
	}
	return false
}
