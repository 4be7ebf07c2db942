package dto

import "time"

// Request DTOs

// CreateAccountRequest carries the base account fields plus the profile fields a patient
// (birth_date, gender, phone) or doctor (specialty, phone) role requires.
type CreateAccountRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	RoleID    int    `json:"role_id" validate:"required,gt=0"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"omitempty,max=20"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
}

// UpdateAccountRequest is a partial update; absent fields keep their value.
type UpdateAccountRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=255"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=6,max=72"`
	RoleID   *int    `json:"role_id" validate:"omitnil,gt=0"`
}

// Response DTOs

// AccountCreatedResponse echoes the provisioned record
type AccountCreatedResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    int       `json:"role_id"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	PatientID *int64    `json:"patient_id,omitempty"`
	DoctorID  *int64    `json:"doctor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientProfileResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
}

type DoctorProfileResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
}

type AccountResponse struct {
	ID        int64                   `json:"id"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Role      RoleResponse            `json:"role"`
	Type      string                  `json:"type"`
	Patient   *PatientProfileResponse `json:"patient,omitempty"`
	Doctor    *DoctorProfileResponse  `json:"doctor,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}
