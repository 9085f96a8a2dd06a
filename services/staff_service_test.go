package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/auth"
	"github.com/gachip90/employee-task-management-be/domain/staff"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/repositories"
)

func newStaffService(t *testing.T) (*StaffService, *emailRecorder) {
	t.Helper()
	email := &emailRecorder{}
	return NewStaffService(repositories.NewEmployeeRepository(newTestDB(t), slog.Default()), email), email
}

func TestStaffService_Create_And_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	service, email := newStaffService(t)

	created, err := service.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Alice", Email: "alice@example.com", Role: "Developer",
	})
	req.NoError(err)
	req.Len(created.AccessCode, 6)
	req.Equal("09:00-17:00", created.WorkSchedule["monday"])
	req.Len(email.sent, 1)

	_, err = service.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Clone", Email: "alice@example.com", Role: "Developer",
	})
	req.ErrorIs(err, errors.ErrEmailTaken)
}

func TestStaffService_Update_Email_Conflict(t *testing.T) {
	req := require.New(t)
	service, _ := newStaffService(t)

	alice, err := service.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Alice", Email: "alice@example.com", Role: "Developer",
	})
	req.NoError(err)
	_, err = service.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Bob", Email: "bob@example.com", Role: "Designer",
	})
	req.NoError(err)

	// When Alice tries to take Bob's email
	err = service.UpdateEmployee(alice.ID, auth.CreateEmployeeRequest{
		Name: "Alice", Email: "bob@example.com", Role: "Developer",
	})
	req.ErrorIs(err, errors.ErrEmailTaken)

	// But updating her own record with her own email is fine
	err = service.UpdateEmployee(alice.ID, auth.CreateEmployeeRequest{
		Name: "Alice R.", Email: "alice@example.com", Role: "Lead",
	})
	req.NoError(err)

	updated, err := service.GetEmployee(alice.ID)
	req.NoError(err)
	req.Equal("Alice R.", updated.Name)
	req.Equal("Lead", updated.Role)
}

func TestStaffService_Missing_Employee(t *testing.T) {
	req := require.New(t)
	service, _ := newStaffService(t)

	_, err := service.GetEmployee("nope")
	req.ErrorIs(err, errors.ErrNotFound)

	err = service.UpdateEmployee("nope", auth.CreateEmployeeRequest{
		Name: "X", Email: "x@example.com", Role: "Y",
	})
	req.ErrorIs(err, errors.ErrNotFound)

	req.ErrorIs(service.DeleteEmployee("nope"), errors.ErrNotFound)
}

func TestStaffService_UpdateWorkSchedule(t *testing.T) {
	req := require.New(t)
	service, _ := newStaffService(t)

	alice, err := service.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Alice", Email: "alice@example.com", Role: "Developer",
	})
	req.NoError(err)

	schedule := staff.WorkSchedule{"monday": "off", "tuesday": "10:00-18:00"}
	req.NoError(service.UpdateWorkSchedule(alice.ID, schedule))

	updated, err := service.GetEmployee(alice.ID)
	req.NoError(err)
	req.Equal("off", updated.WorkSchedule["monday"])
}
