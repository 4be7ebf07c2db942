package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.PatientProfile, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
