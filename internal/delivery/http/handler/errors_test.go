package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/response"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v\nraw: %s", err, rec.Body.String())
	}
	return body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         usecase.NewValidationError(map[string]string{"email": "email is required"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "invalid credentials",
			err:         usecase.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "role not found",
			err:         usecase.ErrRoleNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Role not found",
		},
		{
			name:        "account not found",
			err:         usecase.ErrAccountNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Account not found",
		},
		{
			name:        "duplicate identifier",
			err:         fmt.Errorf("create: %w", usecase.ErrDuplicateIdentifier),
			wantStatus:  http.StatusConflict,
			wantMessage: "Email already registered",
		},
		{
			name:        "duplicate role",
			err:         usecase.ErrDuplicateRole,
			wantStatus:  http.StatusConflict,
			wantMessage: "Role name already exists",
		},
		{
			name:        "admin required",
			err:         usecase.ErrAdminRequired,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Only an admin can assign this role",
		},
		{
			name:        "delete restricted",
			err:         usecase.ErrDeleteRestricted,
			wantStatus:  http.StatusConflict,
			wantMessage: "Account is linked to a profile and cannot be deleted",
		},
		{
			name:        "store unavailable",
			err:         fmt.Errorf("%w: connection refused", usecase.ErrStoreUnavailable),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Storage is temporarily unavailable",
		},
		{
			name:        "unexpected",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to do it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, "Failed to do it")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeEnvelope(t, rec)
			if body.Success {
				t.Error("success = true")
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
		})
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, usecase.NewValidationError(map[string]string{"birth_date": "birth_date is required"}), "")

	body := decodeEnvelope(t, rec)
	fields, ok := body.Error.(map[string]interface{})
	if !ok || fields["birth_date"] != "birth_date is required" {
		t.Errorf("error = %v", body.Error)
	}
}
