package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Owner    *OwnerHandler
	Employee *EmployeeHandler
	Task     *TaskHandler
	Message  *MessageHandler
	Health   *HealthHandler
	WS       *WSHandler
}

// NewRouter wires the REST surface and the websocket endpoint. Route
// names follow the client contract, verbs included in the path.
func NewRouter(log *slog.Logger, h Handlers) *mux.Router {
	router := mux.NewRouter()

	owner := router.PathPrefix("/api/owner").Subrouter()
	owner.HandleFunc("/create-new-access-code", h.Owner.CreateAccessCode).Methods(http.MethodPost)
	owner.HandleFunc("/validate-access-code", h.Owner.ValidateAccessCode).Methods(http.MethodPost)
	owner.HandleFunc("/get-all-employees", h.Employee.GetAllEmployees).Methods(http.MethodGet)
	owner.HandleFunc("/get-employee/{employeeId}", h.Employee.GetEmployee).Methods(http.MethodGet)
	owner.HandleFunc("/create-employee", h.Employee.CreateEmployee).Methods(http.MethodPost)
	owner.HandleFunc("/update-employee/{employeeId}", h.Employee.UpdateEmployee).Methods(http.MethodPut)
	owner.HandleFunc("/delete-employee", h.Employee.DeleteEmployee).Methods(http.MethodDelete)
	owner.HandleFunc("/update-work-schedule/{employeeId}", h.Employee.UpdateWorkSchedule).Methods(http.MethodPut)
	owner.HandleFunc("/get-all-tasks", h.Task.GetAllTasks).Methods(http.MethodGet)
	owner.HandleFunc("/create-task", h.Task.CreateTask).Methods(http.MethodPost)
	owner.HandleFunc("/update-task/{taskId}", h.Task.UpdateTask).Methods(http.MethodPut)
	owner.HandleFunc("/delete-task", h.Task.DeleteTask).Methods(http.MethodDelete)

	router.HandleFunc("/api/employee/validate-email-access-code", h.Employee.ValidateEmailAccessCode).Methods(http.MethodPost)
	router.HandleFunc("/api/message/get-messages", h.Message.GetMessages).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/ws", h.WS.Handle)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Endpoint not found",
			"message": fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
		})
	})

	return router
}

// WithCORS wraps the router for the single configured frontend origin.
func WithCORS(router *mux.Router, allowedOrigin string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)
}
