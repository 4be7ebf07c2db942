package repository

import (
	"context"

	"medical-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

// AccountUpdate lists the mutable account columns. Nil fields are left untouched.
type AccountUpdate struct {
	Name            *string
	LoginIdentifier *string
	PasswordHash    *string
	RoleID          *int
}

// IsEmpty reports whether the update touches no column.
func (u AccountUpdate) IsEmpty() bool {
	return u.Name == nil && u.LoginIdentifier == nil && u.PasswordHash == nil && u.RoleID == nil
}

type AccountRepository interface {
	Create(ctx context.Context, db *gorm.DB, account *entity.Account) error
	FindByLoginIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*entity.Account, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Account, error)
	ExistsByLoginIdentifier(ctx context.Context, db *gorm.DB, identifier string, excludeID int64) (bool, error)
	Update(ctx context.Context, db *gorm.DB, id int64, update AccountUpdate) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
