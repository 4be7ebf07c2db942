package entity

import "time"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorProfile) TableName() string {
	return "doctors"
}
