package handler

import (
	"errors"
	"net/http"
	"strconv"

	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/response"

	"github.com/gorilla/mux"
)

// writeError maps usecase errors to HTTP responses. fallback is the message used for
// unexpected failures.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	case errors.Is(err, usecase.ErrRoleNotFound):
		response.NotFound(w, "Role not found")
	case errors.Is(err, usecase.ErrAccountNotFound):
		response.NotFound(w, "Account not found")
	case errors.Is(err, usecase.ErrDuplicateIdentifier):
		response.Conflict(w, "Email already registered")
	case errors.Is(err, usecase.ErrDuplicateRole):
		response.Conflict(w, "Role name already exists")
	case errors.Is(err, usecase.ErrAdminRequired):
		response.Forbidden(w, "Only an admin can assign this role")
	case errors.Is(err, usecase.ErrDeleteRestricted):
		response.Conflict(w, "Account is linked to a profile and cannot be deleted")
	case errors.Is(err, usecase.ErrStoreUnavailable):
		response.InternalServerError(w, "Storage is temporarily unavailable")
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseAccountID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
