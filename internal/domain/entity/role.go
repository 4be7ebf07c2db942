package entity

import (
	"strings"
	"unicode"
)

// Role represents an account role. Rows are seeded by migrations.
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Seeded role IDs
const (
	RoleIDPatient = 1
	RoleIDDoctor  = 2
	RoleIDAdmin   = 3
)

// RoleNames constants
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

var (
	patientRoleWords = map[string]bool{"patient": true, "paciente": true}
	doctorRoleWords  = map[string]bool{"doctor": true, "medico": true, "médico": true}
)

// Kind classifies the role into the profile type an account with this role links to.
// A whole word of the name decides, so localized names keep working. Seeded roles whose
// name says nothing fall back to their ID.
func (r *Role) Kind() AccountType {
	words := strings.FieldsFunc(strings.ToLower(r.Name), func(c rune) bool {
		return !unicode.IsLetter(c)
	})
	for _, word := range words {
		switch {
		case patientRoleWords[word]:
			return AccountTypePatient
		case doctorRoleWords[word]:
			return AccountTypeDoctor
		}
	}

	switch r.ID {
	case RoleIDPatient:
		return AccountTypePatient
	case RoleIDDoctor:
		return AccountTypeDoctor
	default:
		return AccountTypeGeneric
	}
}

// IsAdmin reports whether accounts with this role hold administrative rights.
func (r *Role) IsAdmin() bool {
	return strings.EqualFold(r.Name, RoleAdmin)
}
