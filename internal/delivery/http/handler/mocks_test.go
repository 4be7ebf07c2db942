package handler

import (
	"context"

	"medical-records-api/internal/delivery/dto"
)

type mockAuthUsecase struct {
	LoginFn        func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	AuthenticateFn func(ctx context.Context, identifier, plaintext string) (*dto.IdentityResponse, error)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.LoginFn(ctx, req)
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, identifier, plaintext string) (*dto.IdentityResponse, error) {
	return m.AuthenticateFn(ctx, identifier, plaintext)
}

type mockAccountUsecase struct {
	CreateAccountFn func(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountCreatedResponse, error)
	GetAccountFn    func(ctx context.Context, id int64) (*dto.AccountResponse, error)
	UpdateAccountFn func(ctx context.Context, id int64, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	DeleteAccountFn func(ctx context.Context, id int64) error
}

func (m *mockAccountUsecase) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountCreatedResponse, error) {
	return m.CreateAccountFn(ctx, req)
}

func (m *mockAccountUsecase) GetAccount(ctx context.Context, id int64) (*dto.AccountResponse, error) {
	return m.GetAccountFn(ctx, id)
}

func (m *mockAccountUsecase) UpdateAccount(ctx context.Context, id int64, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	return m.UpdateAccountFn(ctx, id, req)
}

func (m *mockAccountUsecase) DeleteAccount(ctx context.Context, id int64) error {
	return m.DeleteAccountFn(ctx, id)
}

type mockRoleUsecase struct {
	ListRolesFn  func(ctx context.Context) (*dto.RoleListResponse, error)
	CreateRoleFn func(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
}

func (m *mockRoleUsecase) ListRoles(ctx context.Context) (*dto.RoleListResponse, error) {
	return m.ListRolesFn(ctx)
}

func (m *mockRoleUsecase) CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	return m.CreateRoleFn(ctx, req)
}

type mockAuditLogUsecase struct {
	GetAccountAuditLogsFn func(ctx context.Context, accountID int64) (*dto.AuditLogListResponse, error)
}

func (m *mockAuditLogUsecase) GetAccountAuditLogs(ctx context.Context, accountID int64) (*dto.AuditLogListResponse, error) {
	return m.GetAccountAuditLogsFn(ctx, accountID)
}
