package usecase

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		column string
		want   bool
	}{
		{
			name:   "unique violation on login identifier",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: "accounts_login_identifier_key"},
			column: "login_identifier",
			want:   true,
		},
		{
			name:   "wrapped unique violation",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_login_identifier_key"}),
			column: "login_identifier",
			want:   true,
		},
		{
			name:   "unique violation on another constraint",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: "roles_name_key"},
			column: "login_identifier",
			want:   false,
		},
		{
			name:   "other pg error",
			err:    &pgconn.PgError{Code: "23503", ConstraintName: "accounts_login_identifier_key"},
			column: "login_identifier",
			want:   false,
		},
		{
			name:   "translated gorm error",
			err:    gorm.ErrDuplicatedKey,
			column: "login_identifier",
			want:   true,
		},
		{
			name:   "unrelated error",
			err:    errors.New("boom"),
			column: "login_identifier",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tt.err, tt.column); got != tt.want {
				t.Errorf("isDuplicateKeyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyError(t *testing.T) {
	if !isForeignKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "accounts_role_id_fkey"}, "role") {
		t.Error("role fk violation not detected")
	}
	if isForeignKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "accounts_patient_id_fkey"}, "role") {
		t.Error("patient fk violation reported as role")
	}
	if !isForeignKeyError(gorm.ErrForeignKeyViolated, "role") {
		t.Error("translated gorm error not detected")
	}
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
	}{
		{name: "bad connection", err: driver.ErrBadConn, wantUnavailable: true},
		{name: "network failure", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, wantUnavailable: true},
		{name: "constraint violation", err: &pgconn.PgError{Code: "23505"}, wantUnavailable: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, wantUnavailable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storeError(tt.err)
			if errors.Is(got, ErrStoreUnavailable) != tt.wantUnavailable {
				t.Errorf("storeError(%v) = %v, unavailable want %v", tt.err, got, tt.wantUnavailable)
			}
			if !tt.wantUnavailable && got != tt.err {
				t.Errorf("storeError changed a non-connection error: %v", got)
			}
		})
	}

	if storeError(nil) != nil {
		t.Error("storeError(nil) != nil")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{"phone": "phone is required", "gender": "gender is required"})

	if got := err.Error(); got != "validation failed: gender, phone" {
		t.Errorf("Error() = %q", got)
	}
	if !err.Has("phone") || err.Has("name") {
		t.Errorf("Has() mismatch for %v", err.Fields)
	}
}
