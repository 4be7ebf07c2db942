package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID int64) ([]entity.AuditLog, error)
}
