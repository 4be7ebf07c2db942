package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medical-records-api/config"
	"medical-records-api/internal/converter"
	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/delivery/http/middleware"
	"medical-records-api/internal/domain/entity"
	"medical-records-api/internal/domain/repository"
	"medical-records-api/internal/infrastructure/metrics"
	"medical-records-api/internal/service"
	"medical-records-api/pkg/password"
	"medical-records-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type AccountUsecase interface {
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountCreatedResponse, error)
	GetAccount(ctx context.Context, id int64) (*dto.AccountResponse, error)
	UpdateAccount(ctx context.Context, id int64, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// patientFields and doctorFields hold the profile fields each role requires. They are
// validated only once the role is known.
type patientFields struct {
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

type doctorFields struct {
	Specialty string `json:"specialty" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

type accountUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	validator          *validator.CustomValidator
	accountRepo        repository.AccountRepository
	roleRepo           repository.RoleRepository
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	historyRepo        repository.MedicalHistoryRepository
	auditService       service.AuditService
	hasher             *password.Hasher
	locker             service.ProvisionLocker
	metrics            metrics.Recorder
	deletePolicy       string
	now                func() time.Time
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	historyRepo repository.MedicalHistoryRepository,
	auditService service.AuditService,
	hasher *password.Hasher,
	locker service.ProvisionLocker,
	metrics metrics.Recorder,
	deletePolicy string,
) AccountUsecase {
	return &accountUsecase{
		db:                 db,
		log:                log,
		validator:          validator,
		accountRepo:        accountRepo,
		roleRepo:           roleRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		historyRepo:        historyRepo,
		auditService:       auditService,
		hasher:             hasher,
		locker:             locker,
		metrics:            metrics,
		deletePolicy:       deletePolicy,
		now:                time.Now,
	}
}

// CreateAccount provisions an account and, depending on the role, its patient or doctor
// profile in one transaction. Nothing is persisted unless every step succeeds.
func (u *accountUsecase) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountCreatedResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		u.metrics.RecordProvision(metrics.OutcomeValidation)
		return nil, NewValidationError(u.validator.FormatValidationErrors(err))
	}
	if err := checkPasswordLength(req.Password); err != nil {
		u.metrics.RecordProvision(metrics.OutcomeValidation)
		return nil, err
	}

	account, role, err := u.provision(ctx, req)
	if err != nil {
		u.metrics.RecordProvision(provisionOutcome(err))
		return nil, err
	}

	u.metrics.RecordProvision(metrics.OutcomeSuccess)
	u.log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"role":       role.Name,
		"type":       account.Type(),
	}).Info("Account provisioned")

	return converter.AccountToCreatedResponse(account, role), nil
}

func (u *accountUsecase) provision(ctx context.Context, req *dto.CreateAccountRequest) (*entity.Account, *entity.Role, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(ctx, tx, req.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, nil, storeError(err)
	}
	if role == nil {
		return nil, nil, ErrRoleNotFound
	}
	if role.IsAdmin() && !actorIsAdmin(ctx) {
		return nil, nil, ErrAdminRequired
	}

	release, err := u.locker.Acquire(ctx, tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to acquire provisioning lock: %+v", err)
		return nil, nil, storeError(err)
	}
	defer release()

	exists, err := u.accountRepo.ExistsByLoginIdentifier(ctx, tx, req.Email, 0)
	if err != nil {
		u.log.Warnf("Failed to check login identifier: %+v", err)
		return nil, nil, storeError(err)
	}
	if exists {
		return nil, nil, ErrDuplicateIdentifier
	}

	account := &entity.Account{
		Name:            req.Name,
		LoginIdentifier: req.Email,
		RoleID:          role.ID,
	}

	switch role.Kind() {
	case entity.AccountTypePatient:
		patientID, err := u.createPatientProfile(ctx, tx, req)
		if err != nil {
			return nil, nil, err
		}
		account.PatientID = &patientID
	case entity.AccountTypeDoctor:
		doctorID, err := u.createDoctorProfile(ctx, tx, req)
		if err != nil {
			return nil, nil, err
		}
		account.DoctorID = &doctorID
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, nil, err
	}
	account.PasswordHash = hash

	if err := u.accountRepo.Create(ctx, tx, account); err != nil {
		if isDuplicateKeyError(err, "login_identifier") {
			return nil, nil, ErrDuplicateIdentifier
		}
		if isForeignKeyError(err, "role") {
			return nil, nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create account: %+v", err)
		return nil, nil, storeError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionAccountCreate, account.ID, auditSnapshot(account)); err != nil {
		return nil, nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, nil, storeError(err)
	}

	return account, role, nil
}

func (u *accountUsecase) createPatientProfile(ctx context.Context, tx *gorm.DB, req *dto.CreateAccountRequest) (int64, error) {
	fields := &patientFields{
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		Phone:     req.Phone,
	}
	if err := u.validator.Validate(fields); err != nil {
		return 0, NewValidationError(u.validator.FormatValidationErrors(err))
	}

	birthDate, err := time.Parse(dateLayout, fields.BirthDate)
	if err != nil {
		return 0, NewValidationError(map[string]string{"birth_date": "must be a valid date (YYYY-MM-DD)"})
	}

	profile := &entity.PatientProfile{
		Name:      req.Name,
		BirthDate: birthDate,
		Gender:    fields.Gender,
		Phone:     fields.Phone,
	}
	if err := u.patientProfileRepo.Create(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return 0, storeError(err)
	}

	history := &entity.MedicalHistory{
		PatientID: profile.ID,
		CreatedAt: u.now(),
	}
	if err := u.historyRepo.Create(ctx, tx, history); err != nil {
		u.log.Warnf("Failed to create medical history: %+v", err)
		return 0, storeError(err)
	}

	return profile.ID, nil
}

func (u *accountUsecase) createDoctorProfile(ctx context.Context, tx *gorm.DB, req *dto.CreateAccountRequest) (int64, error) {
	fields := &doctorFields{
		Specialty: req.Specialty,
		Phone:     req.Phone,
	}
	if err := u.validator.Validate(fields); err != nil {
		return 0, NewValidationError(u.validator.FormatValidationErrors(err))
	}

	profile := &entity.DoctorProfile{
		Name:      req.Name,
		Specialty: fields.Specialty,
		Phone:     fields.Phone,
	}
	if err := u.doctorProfileRepo.Create(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return 0, storeError(err)
	}

	return profile.ID, nil
}

func (u *accountUsecase) GetAccount(ctx context.Context, id int64) (*dto.AccountResponse, error) {
	account, err := u.accountRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return nil, storeError(err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return converter.AccountToResponse(account), nil
}

// UpdateAccount applies a partial update. Linked profiles are never touched, also not
// when the role changes.
func (u *accountUsecase) UpdateAccount(ctx context.Context, id int64, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, NewValidationError(u.validator.FormatValidationErrors(err))
	}

	if req.Password != nil {
		if err := checkPasswordLength(*req.Password); err != nil {
			return nil, err
		}
	}

	update := repository.AccountUpdate{
		Name:            req.Name,
		LoginIdentifier: req.Email,
		RoleID:          req.RoleID,
	}
	if update.IsEmpty() && req.Password == nil {
		return nil, NewValidationError(map[string]string{
			"body": "at least one of name, email, password or role_id is required",
		})
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.accountRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return nil, storeError(err)
	}
	if existing == nil {
		return nil, ErrAccountNotFound
	}

	// Role changes are reserved to admins, also on the own account
	if req.RoleID != nil && *req.RoleID != existing.RoleID && !actorIsAdmin(ctx) {
		return nil, ErrAdminRequired
	}

	if req.Email != nil && *req.Email != existing.LoginIdentifier {
		release, err := u.locker.Acquire(ctx, tx, *req.Email)
		if err != nil {
			u.log.Warnf("Failed to acquire provisioning lock: %+v", err)
			return nil, storeError(err)
		}
		defer release()

		exists, err := u.accountRepo.ExistsByLoginIdentifier(ctx, tx, *req.Email, id)
		if err != nil {
			u.log.Warnf("Failed to check login identifier: %+v", err)
			return nil, storeError(err)
		}
		if exists {
			return nil, ErrDuplicateIdentifier
		}
	}

	if req.RoleID != nil {
		role, err := u.roleRepo.FindByID(ctx, tx, *req.RoleID)
		if err != nil {
			u.log.Warnf("Failed to find role: %+v", err)
			return nil, storeError(err)
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
	}

	if req.Password != nil {
		hash, err := u.hasher.Hash(*req.Password)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		update.PasswordHash = &hash
	}

	if err := u.accountRepo.Update(ctx, tx, id, update); err != nil {
		if isDuplicateKeyError(err, "login_identifier") {
			return nil, ErrDuplicateIdentifier
		}
		u.log.Warnf("Failed to update account: %+v", err)
		return nil, storeError(err)
	}

	updated, err := u.accountRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload account: %+v", err)
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, ErrAccountNotFound
	}

	newValue := auditSnapshot(updated)
	if req.Password != nil {
		newValue["password_changed"] = true
	}
	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionAccountUpdate, id, auditSnapshot(existing), newValue); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, storeError(err)
	}

	u.log.WithField("account_id", id).Info("Account updated")

	return converter.AccountToResponse(updated), nil
}

// DeleteAccount removes an account according to the configured delete policy.
func (u *accountUsecase) DeleteAccount(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return storeError(tx.Error)
	}
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find account: %+v", err)
		return storeError(err)
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if u.deletePolicy == config.DeleteRestrict && account.HasProfile() {
		return ErrDeleteRestricted
	}

	if err := u.accountRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete account: %+v", err)
		return storeError(err)
	}

	if u.deletePolicy == config.DeleteCascade {
		if err := u.deleteProfiles(ctx, tx, account); err != nil {
			return err
		}
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionAccountDelete, id, auditSnapshot(account)); err != nil {
		return storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return storeError(err)
	}

	u.log.WithFields(logrus.Fields{
		"account_id": id,
		"policy":     u.deletePolicy,
	}).Info("Account deleted")

	return nil
}

func (u *accountUsecase) deleteProfiles(ctx context.Context, tx *gorm.DB, account *entity.Account) error {
	if account.PatientID != nil {
		if err := u.historyRepo.DeleteByPatientID(ctx, tx, *account.PatientID); err != nil {
			u.log.Warnf("Failed to delete medical histories: %+v", err)
			return storeError(err)
		}
		if err := u.patientProfileRepo.Delete(ctx, tx, *account.PatientID); err != nil {
			u.log.Warnf("Failed to delete patient profile: %+v", err)
			return storeError(err)
		}
	}

	if account.DoctorID != nil {
		if err := u.doctorProfileRepo.Delete(ctx, tx, *account.DoctorID); err != nil {
			u.log.Warnf("Failed to delete doctor profile: %+v", err)
			return storeError(err)
		}
	}

	return nil
}

// auditSnapshot captures the non-secret account columns.
func auditSnapshot(account *entity.Account) map[string]interface{} {
	return map[string]interface{}{
		"name":       account.Name,
		"email":      account.LoginIdentifier,
		"role_id":    account.RoleID,
		"patient_id": account.PatientID,
		"doctor_id":  account.DoctorID,
	}
}

// checkPasswordLength enforces the bcrypt input limit, which is in bytes rather than
// characters.
func checkPasswordLength(plaintext string) error {
	if len(plaintext) > password.MaxLength {
		return NewValidationError(map[string]string{
			"password": "password must be at most 72 bytes",
		})
	}
	return nil
}

func actorFromContext(ctx context.Context) *int64 {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &accountID
}

func actorIsAdmin(ctx context.Context) bool {
	role, ok := middleware.GetRoleFromContext(ctx)
	return ok && strings.EqualFold(role, entity.RoleAdmin)
}

func provisionOutcome(err error) string {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrDuplicateIdentifier):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrRoleNotFound):
		return metrics.OutcomeRoleNotFound
	case errors.Is(err, ErrAdminRequired):
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}
