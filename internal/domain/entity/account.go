package entity

import "time"

// AccountType is derived from which profile reference an account carries
type AccountType string

const (
	AccountTypePatient AccountType = "patient"
	AccountTypeDoctor  AccountType = "doctor"
	AccountTypeGeneric AccountType = "generic"
)

// Account represents a login-capable user. At most one of PatientID and DoctorID is set.
type Account struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	LoginIdentifier string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"type:text;not null" json:"-"`
	RoleID          int       `gorm:"not null;index" json:"role_id"`
	PatientID       *int64    `gorm:"index" json:"patient_id,omitempty"`
	DoctorID        *int64    `gorm:"index" json:"doctor_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role    Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// Type classifies the account by the profile it links to.
func (a *Account) Type() AccountType {
	switch {
	case a.PatientID != nil:
		return AccountTypePatient
	case a.DoctorID != nil:
		return AccountTypeDoctor
	default:
		return AccountTypeGeneric
	}
}

// HasProfile reports whether the account links to a patient or doctor row.
func (a *Account) HasProfile() bool {
	return a.PatientID != nil || a.DoctorID != nil
}
