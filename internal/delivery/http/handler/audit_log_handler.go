package handler

import (
	"net/http"

	"medical-records-api/internal/usecase"
	"medical-records-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAccountAuditLogs(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseAccountID(r)
	if !ok {
		response.BadRequest(w, "Invalid account ID")
		return
	}

	auditLogs, err := h.auditLogUsecase.GetAccountAuditLogs(r.Context(), accountID)
	if err != nil {
		writeError(w, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
