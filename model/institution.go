package model

import (
	"time"

	"github.com/lib/pq"
)

// InstitutionDomains is the closed set of domain categories
var InstitutionDomains = []string{"educacao", "ONG", "empresa", "comercio", "GOV", "politico", "industria"}

// Institution represents a registered organization (legal entity)
type Institution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RazaoSocial  string `gorm:"uniqueIndex;not null" json:"razaoSocial"`
	NomeFantasia string `gorm:"not null" json:"nomeFantasia"`
	Abbr         string `gorm:"not null" json:"abbr"`
	Email        string `gorm:"uniqueIndex" json:"email"`

	Dominio   pq.StringArray `gorm:"type:text[]" json:"dominio"`
	Enderecos pq.StringArray `gorm:"type:text[]" json:"enderecos"`
	Telefone  pq.StringArray `gorm:"type:text[]" json:"telefone"`

	CNPJ string `gorm:"uniqueIndex;not null" json:"cnpj"`

	Media []Storage `gorm:"many2many:institution_media" json:"media,omitempty"`
}

// IsValidDomain reports whether d belongs to the closed domain set
func IsValidDomain(d string) bool {
	for _, v := range InstitutionDomains {
		if v == d {
			return true
		}
	}
	return false
}
