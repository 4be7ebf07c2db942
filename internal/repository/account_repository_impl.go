package repository

import (
	"context"
	"errors"

	"medical-records-api/internal/domain/entity"
	domainRepo "medical-records-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, db *gorm.DB, account *entity.Account) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(account).Error
}

func (r *accountRepository) FindByLoginIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*entity.Account, error) {
	var account entity.Account
	err := db.WithContext(ctx).Preload("Role").Where("login_identifier = ?", identifier).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Account, error) {
	var account entity.Account
	err := db.WithContext(ctx).Preload("Role").Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByLoginIdentifier(ctx context.Context, db *gorm.DB, identifier string, excludeID int64) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&entity.Account{}).Where("login_identifier = ?", identifier)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) Update(ctx context.Context, db *gorm.DB, id int64, update domainRepo.AccountUpdate) error {
	columns := map[string]interface{}{}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.LoginIdentifier != nil {
		columns["login_identifier"] = *update.LoginIdentifier
	}
	if update.PasswordHash != nil {
		columns["password_hash"] = *update.PasswordHash
	}
	if update.RoleID != nil {
		columns["role_id"] = *update.RoleID
	}
	if len(columns) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", id).Updates(columns).Error
}

func (r *accountRepository) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Account{}).Error
}
