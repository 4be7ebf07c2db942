package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"
	domainRepo "medical-records-api/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalHistoryRepository struct{}

func NewMedicalHistoryRepository() domainRepo.MedicalHistoryRepository {
	return &medicalHistoryRepository{}
}

func (r *medicalHistoryRepository) Create(ctx context.Context, db *gorm.DB, history *entity.MedicalHistory) error {
	return db.WithContext(ctx).Create(history).Error
}

func (r *medicalHistoryRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.MedicalHistory, error) {
	var histories []entity.MedicalHistory
	if err := db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at").Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *medicalHistoryRepository) DeleteByPatientID(ctx context.Context, db *gorm.DB, patientID int64) error {
	return db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.MedicalHistory{}).Error
}
