package usecase

import (
	"context"

	"medical-records-api/internal/converter"
	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/domain/entity"
	"medical-records-api/internal/domain/repository"
	"medical-records-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoleUsecase interface {
	ListRoles(ctx context.Context) (*dto.RoleListResponse, error)
	CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
}

type roleUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	validator *validator.CustomValidator
	roleRepo  repository.RoleRepository
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	roleRepo repository.RoleRepository,
) RoleUsecase {
	return &roleUsecase{
		db:        db,
		log:       log,
		validator: validator,
		roleRepo:  roleRepo,
	}
}

func (u *roleUsecase) ListRoles(ctx context.Context) (*dto.RoleListResponse, error) {
	roles, err := u.roleRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, storeError(err)
	}

	return &dto.RoleListResponse{
		Roles: converter.RolesToResponses(roles),
		Total: len(roles),
	}, nil
}

func (u *roleUsecase) CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, NewValidationError(u.validator.FormatValidationErrors(err))
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.roleRepo.FindByName(ctx, tx, req.Name)
	if err != nil {
		u.log.Warnf("Failed to find role by name: %+v", err)
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, ErrDuplicateRole
	}

	role := &entity.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := u.roleRepo.Create(ctx, tx, role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDuplicateRole
		}
		u.log.Warnf("Failed to create role: %+v", err)
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, storeError(err)
	}

	u.log.WithField("role", role.Name).Info("Role created")

	return converter.RoleToResponse(role), nil
}
