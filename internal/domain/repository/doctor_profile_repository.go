package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.DoctorProfile, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
