package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalHistoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, history *entity.MedicalHistory) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.MedicalHistory, error)
	DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID int64) error
}
