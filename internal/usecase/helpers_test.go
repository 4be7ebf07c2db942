package usecase

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"medical-records-api/config"
	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/delivery/http/middleware"
	"medical-records-api/internal/domain/entity"
	"medical-records-api/internal/repository"
	"medical-records-api/internal/service"
	"medical-records-api/pkg/jwt"
	"medical-records-api/pkg/password"
	"medical-records-api/pkg/validator"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestDB opens a fresh on-disk SQLite database with the schema and the seeded roles.
// A single connection keeps concurrent transactions strictly serialized. Constraint
// violations are translated to gorm's driver independent errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.PatientProfile{},
		&entity.DoctorProfile{},
		&entity.MedicalHistory{},
		&entity.Account{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDPatient, Name: entity.RolePatient},
		{ID: entity.RoleIDDoctor, Name: entity.RoleDoctor},
		{ID: entity.RoleIDAdmin, Name: entity.RoleAdmin},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

// recorderStub counts outcomes per metric
type recorderStub struct {
	mu         sync.Mutex
	logins     map[string]int
	provisions map[string]int
}

func newRecorderStub() *recorderStub {
	return &recorderStub{
		logins:     make(map[string]int),
		provisions: make(map[string]int),
	}
}

func (r *recorderStub) RecordLogin(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins[outcome]++
}

func (r *recorderStub) RecordProvision(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provisions[outcome]++
}

func (r *recorderStub) RecordHTTPRequest(string, int, time.Duration) {}

func (r *recorderStub) login(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logins[outcome]
}

func (r *recorderStub) provision(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.provisions[outcome]
}

type testEnv struct {
	db         *gorm.DB
	log        *logrus.Logger
	recorder   *recorderStub
	jwtService *jwt.JWTService
	accounts   *accountUsecase
	auth       *authUsecase
	roles      RoleUsecase
	auditLogs  AuditLogUsecase
}

func newTestEnv(t *testing.T, locker service.ProvisionLocker, deletePolicy string) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	recorder := newRecorderStub()
	v := validator.NewValidator()
	hasher := password.NewHasher(log)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: testSecret, Expiry: time.Hour})

	accountRepo := repository.NewAccountRepository()
	roleRepo := repository.NewRoleRepository()
	patientRepo := repository.NewPatientProfileRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	historyRepo := repository.NewMedicalHistoryRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditLogRepo)

	if locker == nil {
		locker = service.NoopLocker{}
	}
	if deletePolicy == "" {
		deletePolicy = config.DeleteOrphan
	}

	return &testEnv{
		db:         db,
		log:        log,
		recorder:   recorder,
		jwtService: jwtService,
		accounts: NewAccountUsecase(db, log, v, accountRepo, roleRepo, patientRepo, doctorRepo,
			historyRepo, auditService, hasher, locker, recorder, deletePolicy).(*accountUsecase),
		auth:      NewAuthUsecase(db, log, v, accountRepo, patientRepo, doctorRepo, hasher, jwtService, recorder).(*authUsecase),
		roles:     NewRoleUsecase(db, log, v, roleRepo),
		auditLogs: NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func patientRequest(email string) *dto.CreateAccountRequest {
	return &dto.CreateAccountRequest{
		Name:      "Ana Torres",
		Email:     email,
		Password:  "s3cret-pw",
		RoleID:    entity.RoleIDPatient,
		BirthDate: "2000-06-15",
		Gender:    "F",
		Phone:     "555-0101",
	}
}

func doctorRequest(email string) *dto.CreateAccountRequest {
	return &dto.CreateAccountRequest{
		Name:      "Luis Gómez",
		Email:     email,
		Password:  "s3cret-pw",
		RoleID:    entity.RoleIDDoctor,
		Phone:     "555-0202",
		Specialty: "Cardiology",
	}
}

func adminRequest(email string) *dto.CreateAccountRequest {
	return &dto.CreateAccountRequest{
		Name:     "Root",
		Email:    email,
		Password: "s3cret-pw",
		RoleID:   entity.RoleIDAdmin,
	}
}

// actorContext carries the identity of an authenticated caller
func actorContext(accountID int64, role string) context.Context {
	return middleware.WithClaims(context.Background(), &jwt.Claims{AccountID: accountID, Role: role})
}

func adminContext() context.Context {
	return actorContext(1000, entity.RoleAdmin)
}

// mustCreate provisions req, acting as an admin when the role requires one
func mustCreate(t *testing.T, e *testEnv, req *dto.CreateAccountRequest) *dto.AccountCreatedResponse {
	t.Helper()
	ctx := context.Background()
	if req.RoleID == entity.RoleIDAdmin {
		ctx = adminContext()
	}
	created, err := e.accounts.CreateAccount(ctx, req)
	if err != nil {
		t.Fatalf("CreateAccount(%s): %v", req.Email, err)
	}
	return created
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
