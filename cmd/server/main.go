package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"github.com/gachip90/employee-task-management-be/infrastructure/http/server"
	"github.com/gachip90/employee-task-management-be/internal"
	"github.com/gachip90/employee-task-management-be/notify"
	"github.com/gachip90/employee-task-management-be/observability"
	"github.com/gachip90/employee-task-management-be/repositories"
	"github.com/gachip90/employee-task-management-be/runtime"
	"github.com/gachip90/employee-task-management-be/runtime/workers"
	"github.com/gachip90/employee-task-management-be/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories
	messageRepository := repositories.NewMessageRepository(db, log)
	employeeRepository := repositories.NewEmployeeRepository(db, log)
	ownerRepository := repositories.NewOwnerRepository(db, log)
	taskRepository := repositories.NewTaskRepository(db, log)

	// 4. Supervision & Orchestration
	monitor := observability.NewMonitor()
	supervisor := workers.NewSupervisor(log)
	supervisor.Add(workers.NewHealthMonitoringWorker(log, monitor, config.MetricInterval))
	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(log, supervisor, registry,
		messageRepository, monitor, config.BufferSize, config.StoreTimeout)

	// 5. Services
	chatService := services.NewChatService(orchestrator)
	accessService := services.NewAccessService(ownerRepository, employeeRepository,
		notify.NewLogSMSSender(log), config.AuthTokenDuration)
	staffService := services.NewStaffService(employeeRepository, notify.NewLogEmailSender(log))
	taskService := services.NewTaskService(taskRepository, employeeRepository)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Start the Engine
	orchestrator.Start(ctx)

	// 8. HTTP Server Setup
	router := server.NewRouter(log, server.Handlers{
		Owner:    server.NewOwnerHandler(log, accessService),
		Employee: server.NewEmployeeHandler(log, staffService, accessService),
		Task:     server.NewTaskHandler(log, taskService),
		Message:  server.NewMessageHandler(log, chatService),
		Health:   server.NewHealthHandler(log, monitor),
		WS:       server.NewWSHandler(log, chatService, monitor, config.ConnectionBufferSize, config.NotifySendErrors),
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.WithCORS(router, config.AllowedOrigin),
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 10. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
