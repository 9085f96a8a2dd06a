package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gachip90/employee-task-management-be/auth"
	apperrors "github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/domain/staff"
	"github.com/gachip90/employee-task-management-be/services"
)

// EmployeeHandler serves the owner-facing employee CRUD plus the
// employee-facing email login.
type EmployeeHandler struct {
	log    *slog.Logger
	staff  services.IStaffService
	access services.IAccessService
}

func NewEmployeeHandler(log *slog.Logger, staffSvc services.IStaffService,
	access services.IAccessService) *EmployeeHandler {
	return &EmployeeHandler{log: log, staff: staffSvc, access: access}
}

func (h *EmployeeHandler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.staff.ListEmployees()
	if err != nil {
		h.log.Error("failed to list employees", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to retrieve employees"))
		return
	}
	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": toEmployeePayloads(employees),
	})
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["employeeId"]
	employee, err := h.staff.GetEmployee(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	}
	if err != nil {
		h.log.Error("failed to get employee", "employee_id", id, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to retrieve employee"))
		return
	}
	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success":  true,
		"employee": toEmployeePayload(employee),
	})
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req auth.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Name, email, and role are required"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid email or phone number format"))
		return
	}

	created, err := h.staff.CreateEmployee(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrEmailTaken):
		writeJSON(h.log, w, http.StatusConflict, failure("Employee with this email already exists"))
		return
	default:
		h.log.Error("failed to create employee", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to create employee"))
		return
	}

	writeJSON(h.log, w, http.StatusCreated, map[string]any{
		"success":    true,
		"message":    "Employee created successfully and access code sent via email",
		"employeeId": created.ID,
	})
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["employeeId"]
	var req auth.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Name, email, and role are required"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid email or phone number format"))
		return
	}

	err := h.staff.UpdateEmployee(id, req)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	case errors.Is(err, apperrors.ErrEmailTaken):
		writeJSON(h.log, w, http.StatusConflict, failure("Employee with this email already exists"))
		return
	default:
		h.log.Error("failed to update employee", "employee_id", id, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to update employee"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Employee updated successfully",
	})
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmployeeID == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Employee ID is required"))
		return
	}

	err := h.staff.DeleteEmployee(req.EmployeeID)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	default:
		h.log.Error("failed to delete employee", "employee_id", req.EmployeeID, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to delete employee"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Employee deleted successfully",
	})
}

func (h *EmployeeHandler) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["employeeId"]
	var req struct {
		WorkSchedule staff.WorkSchedule `json:"workSchedule"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.WorkSchedule) == 0 {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Work schedule is required"))
		return
	}

	err := h.staff.UpdateWorkSchedule(id, req.WorkSchedule)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	default:
		h.log.Error("failed to update work schedule", "employee_id", id, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to update work schedule"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Work schedule updated successfully",
	})
}

func (h *EmployeeHandler) ValidateEmailAccessCode(w http.ResponseWriter, r *http.Request) {
	var req auth.ValidateEmailAccessCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if req.Email == "" || req.AccessCode == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Email and access code are required"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid email format"))
		return
	}

	token, employeeID, err := h.access.ValidateEmployeeAccessCode(r.Context(), req.Email, req.AccessCode)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	case errors.Is(err, apperrors.ErrInvalidAccessCode):
		writeJSON(h.log, w, http.StatusUnauthorized, failure("Invalid access code"))
		return
	default:
		h.log.Error("failed to validate email access code", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to validate access code"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Access code validated successfully",
		"employeeId": employeeID,
		"token":      token,
	})
}
