package entity

import "time"

// MedicalHistory is the header row diagnoses hang off. One is opened per patient at
// provisioning time.
type MedicalHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID int64     `gorm:"not null;index" json:"patient_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}
