package handler

import (
	"encoding/json"
	"net/http"

	"medical-records-api/internal/delivery/dto"
	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/response"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
	}
}

// CreateAccount provisions an account together with the profile its role requires
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	account, err := h.accountUsecase.CreateAccount(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create account")
		return
	}

	response.Created(w, "Account created successfully", account)
}

// GetAccount
// @Summary Get account
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(r)
	if !ok {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	account, err := h.accountUsecase.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get account")
		return
	}

	response.Success(w, http.StatusOK, "Account retrieved successfully", account)
}

// UpdateAccount applies a partial update
// @Summary Update account
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(r)
	if !ok {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	account, err := h.accountUsecase.UpdateAccount(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update account")
		return
	}

	response.Success(w, http.StatusOK, "Account updated successfully", account)
}

// DeleteAccount
// @Summary Delete account
// @Tags Accounts
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(r)
	if !ok {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	if err := h.accountUsecase.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete account")
		return
	}

	response.Success(w, http.StatusOK, "Account deleted successfully", nil)
}
