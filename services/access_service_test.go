package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/auth"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/repositories"
)

type smsRecorder struct {
	sent []string
	err  error
}

func (r *smsRecorder) SendAccessCode(_ context.Context, phoneNumber, code string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.sent = append(r.sent, phoneNumber+":"+code)
	return "SM-test", nil
}

type emailRecorder struct {
	sent []string
	err  error
}

func (r *emailRecorder) SendAccessCode(_ context.Context, name, email, code string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, email+":"+code)
	return nil
}

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAccessService_Owner_Flow(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	owners := repositories.NewOwnerRepository(db, slog.Default())
	employees := repositories.NewEmployeeRepository(db, slog.Default())
	sms := &smsRecorder{}
	service := NewAccessService(owners, employees, sms, time.Hour)
	phone := "+84901234567"

	// When requesting a code
	delivery, err := service.CreateOwnerAccessCode(context.Background(), phone)
	req.NoError(err)
	req.Len(delivery.AccessCode, 6)
	req.Equal("SM-test", delivery.MessageSID)
	req.NoError(delivery.SMSErr)
	req.Len(sms.sent, 1)

	// Then a wrong code is rejected
	_, err = service.ValidateOwnerAccessCode(context.Background(), phone, "000000")
	req.ErrorIs(err, errors.ErrInvalidAccessCode)

	// And the right code yields a session token
	token, err := service.ValidateOwnerAccessCode(context.Background(), phone, delivery.AccessCode)
	req.NoError(err)
	claims, err := auth.ValidateToken(string(token))
	req.NoError(err)
	req.Equal(phone, claims.SubjectID)

	// And the code cannot be replayed
	_, err = service.ValidateOwnerAccessCode(context.Background(), phone, delivery.AccessCode)
	req.ErrorIs(err, errors.ErrInvalidAccessCode)
}

func TestAccessService_Owner_SMS_Failure_Keeps_Code(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	owners := repositories.NewOwnerRepository(db, slog.Default())
	employees := repositories.NewEmployeeRepository(db, slog.Default())
	sms := &smsRecorder{err: context.DeadlineExceeded}
	service := NewAccessService(owners, employees, sms, time.Hour)
	phone := "+84901234567"

	// When the SMS gateway fails
	delivery, err := service.CreateOwnerAccessCode(context.Background(), phone)

	// Then the code was still persisted and reported
	req.NoError(err)
	req.Error(delivery.SMSErr)
	req.Len(delivery.AccessCode, 6)

	_, err = service.ValidateOwnerAccessCode(context.Background(), phone, delivery.AccessCode)
	req.NoError(err)
}

func TestAccessService_Unknown_Owner(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	service := NewAccessService(repositories.NewOwnerRepository(db, slog.Default()),
		repositories.NewEmployeeRepository(db, slog.Default()), &smsRecorder{}, time.Hour)

	_, err := service.ValidateOwnerAccessCode(context.Background(), "+84999999999", "123456")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestAccessService_Employee_Flow(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	employees := repositories.NewEmployeeRepository(db, slog.Default())
	email := &emailRecorder{}
	staffService := NewStaffService(employees, email)
	service := NewAccessService(repositories.NewOwnerRepository(db, slog.Default()),
		employees, &smsRecorder{}, time.Hour)

	created, err := staffService.CreateEmployee(context.Background(), auth.CreateEmployeeRequest{
		Name: "Alice", Email: "alice@example.com", Role: "Developer",
	})
	req.NoError(err)
	req.Len(email.sent, 1)

	// When the employee validates with the emailed code
	token, employeeID, err := service.ValidateEmployeeAccessCode(context.Background(),
		"alice@example.com", created.AccessCode)
	req.NoError(err)
	req.Equal(created.ID, employeeID)
	req.NotEmpty(token)

	// Then the code is cleared and the login recorded
	stored, found, err := employees.Get(created.ID)
	req.NoError(err)
	req.True(found)
	req.Empty(stored.AccessCode)
	req.NotNil(stored.LastLogin)

	// And a replay is rejected
	_, _, err = service.ValidateEmployeeAccessCode(context.Background(),
		"alice@example.com", created.AccessCode)
	req.ErrorIs(err, errors.ErrInvalidAccessCode)
}
