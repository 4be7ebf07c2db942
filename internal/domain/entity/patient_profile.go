package entity

import "time"

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	Gender    string    `gorm:"type:varchar(20);not null" json:"gender"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Histories []MedicalHistory `gorm:"foreignKey:PatientID" json:"histories,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patients"
}

// AgeAt returns the patient's age in whole years on the given day.
func (p *PatientProfile) AgeAt(now time.Time) int {
	return AgeAt(p.BirthDate, now)
}

// AgeAt returns the number of full years between birth and now. A birthday that has not
// yet come around this year does not count.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
