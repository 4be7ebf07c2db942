package usecase

import (
	"context"
	"sync"
	"time"

	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/domain/entity"
	"medical-records-api/internal/domain/repository"
	"medical-records-api/internal/infrastructure/metrics"
	"medical-records-api/pkg/jwt"
	"medical-records-api/pkg/password"
	"medical-records-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const loginSuccessMessage = "Login successful"

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Authenticate(ctx context.Context, identifier, plaintext string) (*dto.IdentityResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	validator          *validator.CustomValidator
	accountRepo        repository.AccountRepository
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	hasher             *password.Hasher
	jwtService         *jwt.JWTService
	metrics            metrics.Recorder
	now                func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	accountRepo repository.AccountRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	hasher *password.Hasher,
	jwtService *jwt.JWTService,
	metrics metrics.Recorder,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		validator:          validator,
		accountRepo:        accountRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		hasher:             hasher,
		jwtService:         jwtService,
		metrics:            metrics,
		now:                time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		u.metrics.RecordLogin(metrics.OutcomeValidation)
		return nil, NewValidationError(u.validator.FormatValidationErrors(err))
	}

	identity, err := u.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(identity.ID, identity.Email, identity.Type, identity.Role)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		u.metrics.RecordLogin(metrics.OutcomeError)
		return nil, err
	}

	u.metrics.RecordLogin(metrics.OutcomeSuccess)
	u.log.WithFields(logrus.Fields{
		"account_id": identity.ID,
		"type":       identity.Type,
	}).Info("Login successful")

	return &dto.LoginResponse{
		Token:   token,
		User:    *identity,
		Message: loginSuccessMessage,
	}, nil
}

// Authenticate resolves the identity behind a login identifier and password. Unknown
// identifiers and wrong passwords both yield ErrInvalidCredentials.
func (u *authUsecase) Authenticate(ctx context.Context, identifier, plaintext string) (*dto.IdentityResponse, error) {
	// Login reads only, no transaction needed
	account, err := u.accountRepo.FindByLoginIdentifier(ctx, u.db, identifier)
	if err != nil {
		u.log.Warnf("Failed to find account by login identifier: %+v", err)
		u.metrics.RecordLogin(metrics.OutcomeError)
		return nil, storeError(err)
	}

	if account == nil {
		// Spend the same bcrypt work as a real comparison
		u.hasher.Verify(plaintext, u.dummyVerifier())
		u.log.Warn("Login failed: unknown login identifier")
		u.metrics.RecordLogin(metrics.OutcomeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Verify(plaintext, account.PasswordHash) {
		u.log.WithField("account_id", account.ID).Warn("Login failed: password mismatch")
		u.metrics.RecordLogin(metrics.OutcomeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	identity := &dto.IdentityResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.LoginIdentifier,
		Type:  string(account.Type()),
		Role:  account.Role.Name,
	}

	switch account.Type() {
	case entity.AccountTypePatient:
		profile, err := u.patientProfileRepo.FindByID(ctx, u.db, *account.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile: %+v", err)
			u.metrics.RecordLogin(metrics.OutcomeError)
			return nil, storeError(err)
		}
		identity.PatientID = account.PatientID
		if profile != nil {
			age := profile.AgeAt(u.now())
			birthDate := profile.BirthDate.Format("2006-01-02")
			identity.Age = &age
			identity.BirthDate = &birthDate
			identity.Gender = profile.Gender
			identity.Contact = profile.Phone
		}
	case entity.AccountTypeDoctor:
		profile, err := u.doctorProfileRepo.FindByID(ctx, u.db, *account.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			u.metrics.RecordLogin(metrics.OutcomeError)
			return nil, storeError(err)
		}
		identity.DoctorID = account.DoctorID
		if profile != nil {
			identity.Specialty = profile.Specialty
			identity.Contact = profile.Phone
		}
	}

	return identity, nil
}

func (u *authUsecase) dummyVerifier() string {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash("unknown-account-placeholder")
		if err != nil {
			u.log.Warnf("Failed to hash placeholder password: %+v", err)
			return
		}
		u.dummyHash = hash
	})
	return u.dummyHash
}
