package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gachip90/employee-task-management-be/auth"
	apperrors "github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/services"
)

type TaskHandler struct {
	log   *slog.Logger
	tasks services.ITaskService
}

func NewTaskHandler(log *slog.Logger, tasks services.ITaskService) *TaskHandler {
	return &TaskHandler{log: log, tasks: tasks}
}

// GetAllTasks lists tasks, optionally filtered by the employeeId query
// parameter. An empty result is a 404, matching what clients expect.
func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.URL.Query().Get("employeeId"))
	if err != nil {
		h.log.Error("failed to list tasks", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to retrieve tasks"))
		return
	}
	if len(tasks) == 0 {
		writeJSON(h.log, w, http.StatusNotFound, failure("No tasks found"))
		return
	}
	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Tasks retrieved successfully",
		"data":    toTaskPayloads(tasks),
	})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req auth.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest,
			failure("Title, assigned name, employee ID, and status are required"))
		return
	}

	created, err := h.tasks.CreateTask(req)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Employee not found"))
		return
	default:
		h.log.Error("failed to create task", "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to create task"))
		return
	}

	writeJSON(h.log, w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Task created successfully",
		"data":    map[string]any{"taskId": created.ID},
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskId"]
	var req auth.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Invalid request body"))
		return
	}
	if err := auth.Validate(req); err != nil {
		writeJSON(h.log, w, http.StatusBadRequest,
			failure("Title, assigned name, employee ID, and status are required"))
		return
	}

	err := h.tasks.UpdateTask(id, req)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Task or assigned employee not found"))
		return
	default:
		h.log.Error("failed to update task", "task_id", id, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to update task"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task updated successfully",
		"data":    map[string]any{"taskId": id},
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TaskID == "" {
		writeJSON(h.log, w, http.StatusBadRequest, failure("Task ID is required"))
		return
	}

	err := h.tasks.DeleteTask(req.TaskID)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(h.log, w, http.StatusNotFound, failure("Task not found"))
		return
	default:
		h.log.Error("failed to delete task", "task_id", req.TaskID, "error", err)
		writeJSON(h.log, w, http.StatusInternalServerError, failure("Failed to delete task"))
		return
	}

	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task deleted successfully",
	})
}
