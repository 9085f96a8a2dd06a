package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gachip90/employee-task-management-be/auth"
	apperrors "github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/services"
)

// OwnerHandler serves the phone-based owner login flow.
type OwnerHandler struct {
	log    *slog.Logger
	access services.IAccessService
}

func NewOwnerHandler(log *slog.Logger, access services.IAccessService) *OwnerHandler {
	return &OwnerHandler{log: log, access: access}
}

func (h *OwnerHandler) CreateAccessCode(w http.ResponseWriter, r *http.Request) {
	var req auth.CreateAccessCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if req.PhoneNumber == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Phone number is required"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest,
			failure("Invalid phone number format. Please use international format (+84xxxxxxxxx)"))
		return
	}

	delivery, err := h.access.CreateOwnerAccessCode(r.Context(), req.PhoneNumber)
	if err != nil {
		h.log.Error("failed to create access code", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to create access code"))
		return
	}

	// The code survives a failed SMS, so surface it to the caller instead
	// of forcing a regeneration round-trip.
	if delivery.SMSErr != nil {
		h.log.Warn("sms delivery failed", "phone_number", delivery.PhoneNumber, "error", delivery.SMSErr)
		writeJSON(h.log, w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "Access code created but SMS delivery failed",
			"phoneNumber": delivery.PhoneNumber,
			"accessCode":  delivery.AccessCode,
			"smsError":    delivery.SMSErr.Error(),
		})
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Access code sent successfully via SMS",
		"phoneNumber": delivery.PhoneNumber,
		"messageSid":  delivery.MessageSID,
	})
}

func (h *OwnerHandler) ValidateAccessCode(w http.ResponseWriter, r *http.Request) {
	var req auth.ValidateAccessCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if req.PhoneNumber == "" || req.AccessCode == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Phone number and access code are required"))
		return
	}

	token, err := h.access.ValidateOwnerAccessCode(r.Context(), req.PhoneNumber, req.AccessCode)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Owner not found"))
		return
	case errors.Is(err, apperrors.ErrInvalidAccessCode):
		writeJSON(h.log, w, http.StatusUnauthorized, failure("Invalid access code"))
		return
	default:
		h.log.Error("failed to validate access code", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to validate access code"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Access code validated successfully",
		"phoneNumber": req.PhoneNumber,
		"token":       token,
	})
}
