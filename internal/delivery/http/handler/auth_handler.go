package handler

import (
	"encoding/json"
	"net/http"

	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/delivery/http/middleware"
	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login handles account login
// @Summary Login
// @Description Login with email and password, returns a session token and the identity
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to login")
		return
	}

	// Login answers with the bare {token, user, message} object
	response.JSON(w, http.StatusOK, result)
}

// Logout acknowledges a logout. Tokens stay valid until they expire.
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser returns the identity asserted by the bearer token
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	email, _ := middleware.GetAccountEmailFromContext(r.Context())
	accountType, _ := middleware.GetAccountTypeFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	response.Success(w, http.StatusOK, "User retrieved successfully", &dto.CurrentUserResponse{
		AccountID: accountID,
		Email:     email,
		Type:      accountType,
		Role:      role,
	})
}
