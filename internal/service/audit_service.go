package service

import (
	"context"

	"medical-records-api/internal/domain/entity"
	"medical-records-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit entries inside the caller's transaction, so an entry exists
// exactly when the change it describes was committed.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, newValue interface{}) error {
	return s.write(ctx, tx, actorID, action, accountID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, actorID, action, accountID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, oldValue interface{}) error {
	return s.write(ctx, tx, actorID, action, accountID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actorID *int64, action string, accountID int64, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		ActorID:   actorID,
		AccountID: accountID,
		Action:    action,
		Metadata: entity.JSON{
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
