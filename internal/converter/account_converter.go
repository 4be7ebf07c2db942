package converter

import (
	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// AccountToResponse converts an Account entity to AccountResponse DTO.
// Role, Patient and Doctor are included when they are loaded.
func AccountToResponse(account *entity.Account) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	response := &dto.AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.LoginIdentifier,
		Role:      *RoleToResponse(&account.Role),
		Type:      string(account.Type()),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}

	if account.Patient != nil {
		response.Patient = PatientProfileToResponse(account.Patient)
	}

	if account.Doctor != nil {
		response.Doctor = DoctorProfileToResponse(account.Doctor)
	}

	return response
}

// AccountToCreatedResponse converts a freshly inserted Account to the provisioning response
func AccountToCreatedResponse(account *entity.Account, role *entity.Role) *dto.AccountCreatedResponse {
	if account == nil || role == nil {
		return nil
	}

	return &dto.AccountCreatedResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.LoginIdentifier,
		RoleID:    role.ID,
		Role:      role.Name,
		Type:      string(account.Type()),
		PatientID: account.PatientID,
		DoctorID:  account.DoctorID,
		CreatedAt: account.CreatedAt,
	}
}

func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		BirthDate: profile.BirthDate.Format(dateLayout),
		Gender:    profile.Gender,
		Phone:     profile.Phone,
	}
}

func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Specialty: profile.Specialty,
		Phone:     profile.Phone,
	}
}
