//go:generate go run go.uber.org/mock/mockgen -source=employee.go -destination=../mocks/mock_employee_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/domain/staff"
)

type IEmployeeRepository interface {
	Create(employee staff.Employee) (staff.Employee, error)
	Get(id string) (staff.Employee, bool, error)
	GetByEmail(email string) (staff.Employee, bool, error)
	ListActive() ([]staff.Employee, error)
	Update(employee staff.Employee) error
	Delete(id string) error
}

type EmployeeRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewEmployeeRepository(db *badger.DB, log *slog.Logger) EmployeeRepository {
	return EmployeeRepository{db: db, log: log}
}

type diskEmployee struct {
	ID             string            `cbor:"id"`
	Name           string            `cbor:"name"`
	Email          string            `cbor:"email"`
	Role           string            `cbor:"role"`
	PhoneNumber    string            `cbor:"phone_number"`
	Address        string            `cbor:"address"`
	AccessCode     string            `cbor:"access_code"`
	IsActive       bool              `cbor:"is_active"`
	CreatedAt      time.Time         `cbor:"created_at"`
	LastLogin      *time.Time        `cbor:"last_login"`
	WorkSchedule   map[string]string `cbor:"work_schedule"`
	ProfilePicture string            `cbor:"profile_picture"`
}

func employeeKey(id string) []byte {
	return []byte(fmt.Sprintf("emp:%s", id))
}

// emailKey indexes employees by email for uniqueness checks and the
// email-based access-code login.
func emailKey(email string) []byte {
	return []byte(fmt.Sprintf("empemail:%s", email))
}

// Create persists a new employee. CreatedAt is assigned at write time.
// The email uniqueness check and the write happen in one transaction.
func (r EmployeeRepository) Create(employee staff.Employee) (staff.Employee, error) {
	employee.CreatedAt = time.Now().UTC()
	err := r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(emailKey(employee.Email))
		if err == nil {
			return apperrors.ErrEmailTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		bytes, err := encode(fromEmployee(employee))
		if err != nil {
			return err
		}
		if err = txn.Set(employeeKey(employee.ID), bytes); err != nil {
			return err
		}
		return txn.Set(emailKey(employee.Email), []byte(employee.ID))
	})
	if err != nil {
		return staff.Employee{}, err
	}
	return employee, nil
}

func (r EmployeeRepository) Get(id string) (staff.Employee, bool, error) {
	var employee staff.Employee
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(employeeKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			var record diskEmployee
			if err := decode(value, &record); err != nil {
				return err
			}
			employee, found = toEmployee(record), true
			return nil
		})
	})
	return employee, found, err
}

func (r EmployeeRepository) GetByEmail(email string) (staff.Employee, bool, error) {
	var id string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			id = string(value)
			return nil
		})
	})
	if err != nil || id == "" {
		return staff.Employee{}, false, err
	}
	return r.Get(id)
}

// ListActive scans the employee prefix and keeps active records only.
// Insertion order (by id) is good enough here; callers sort if they care.
func (r EmployeeRepository) ListActive() ([]staff.Employee, error) {
	var employees []staff.Employee
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("emp:")
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record diskEmployee
				if err := decode(value, &record); err != nil {
					return err
				}
				if record.IsActive {
					employees = append(employees, toEmployee(record))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return employees, err
}

// Update rewrites an existing employee and keeps the email index in sync
// when the address changed. Missing employees surface ErrNotFound.
func (r EmployeeRepository) Update(employee staff.Employee) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(employeeKey(employee.ID))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		var previous diskEmployee
		if err = item.Value(func(value []byte) error {
			return decode(value, &previous)
		}); err != nil {
			return err
		}
		if previous.Email != employee.Email {
			if err = txn.Delete(emailKey(previous.Email)); err != nil {
				return err
			}
			if err = txn.Set(emailKey(employee.Email), []byte(employee.ID)); err != nil {
				return err
			}
		}
		bytes, err := encode(fromEmployee(employee))
		if err != nil {
			return err
		}
		return txn.Set(employeeKey(employee.ID), bytes)
	})
}

func (r EmployeeRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(employeeKey(id))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		var record diskEmployee
		if err = item.Value(func(value []byte) error {
			return decode(value, &record)
		}); err != nil {
			return err
		}
		if err = txn.Delete(emailKey(record.Email)); err != nil {
			return err
		}
		return txn.Delete(employeeKey(id))
	})
}

func fromEmployee(employee staff.Employee) diskEmployee {
	return diskEmployee{
		ID:             employee.ID,
		Name:           employee.Name,
		Email:          employee.Email,
		Role:           employee.Role,
		PhoneNumber:    employee.PhoneNumber,
		Address:        employee.Address,
		AccessCode:     employee.AccessCode,
		IsActive:       employee.IsActive,
		CreatedAt:      employee.CreatedAt,
		LastLogin:      employee.LastLogin,
		WorkSchedule:   employee.WorkSchedule,
		ProfilePicture: employee.ProfilePicture,
	}
}

func toEmployee(record diskEmployee) staff.Employee {
	return staff.Employee{
		ID:             record.ID,
		Name:           record.Name,
		Email:          record.Email,
		Role:           record.Role,
		PhoneNumber:    record.PhoneNumber,
		Address:        record.Address,
		AccessCode:     record.AccessCode,
		IsActive:       record.IsActive,
		CreatedAt:      record.CreatedAt.UTC(),
		LastLogin:      record.LastLogin,
		WorkSchedule:   record.WorkSchedule,
		ProfilePicture: record.ProfilePicture,
	}
}
