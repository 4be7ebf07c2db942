package dto

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

// LoginResponse is returned as is, without the response envelope
type LoginResponse struct {
	Token   string           `json:"token"`
	User    IdentityResponse `json:"user"`
	Message string           `json:"message"`
}

// IdentityResponse is the authenticated caller's profile. Patient and doctor fields are
// only filled for the matching account type.
type IdentityResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Role  string `json:"role"`

	// patient
	PatientID *int64  `json:"patient_id,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Gender    string  `json:"gender,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`

	// doctor
	DoctorID  *int64 `json:"doctor_id,omitempty"`
	Specialty string `json:"specialty,omitempty"`

	Contact string `json:"contact,omitempty"`
}

// CurrentUserResponse echoes the claims of the presented token
type CurrentUserResponse struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Role      string `json:"role"`
}
