package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// PersonRoles is the closed set of roles a person may hold
var PersonRoles = []string{"user", "admin", "professor", "mentor", "orientador", "monitor", "aluno", "pesquisador"}

// SocialLinks holds the person's social profile URLs
type SocialLinks struct {
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
}

// Person represents a registered member of the platform
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string         `gorm:"not null" json:"firstName"`
	LastName  string         `gorm:"not null" json:"lastName"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Roles     pq.StringArray `gorm:"type:text[];not null" json:"roles"`

	// Never expose the credential hash in JSON
	PasswordHash string `gorm:"not null" json:"-"`

	Hex        string                          `gorm:"not null;default:'#3498db'" json:"hex"`
	Bio        string                          `gorm:"type:text" json:"bio"`
	Social     datatypes.JSONType[SocialLinks] `json:"social"`
	Newsletter bool                            `gorm:"default:false" json:"newsletter"`

	AvatarID *uint    `json:"avatarId,omitempty"`
	Avatar   *Storage `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
	CoverID  *uint    `json:"coverId,omitempty"`
	Cover    *Storage `gorm:"foreignKey:CoverID" json:"cover,omitempty"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// IsValidRole reports whether role belongs to the closed role set
func IsValidRole(role string) bool {
	for _, r := range PersonRoles {
		if r == role {
			return true
		}
	}
	return false
}
