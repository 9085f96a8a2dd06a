package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/auth"
	"github.com/gachip90/employee-task-management-be/contract"
	"github.com/gachip90/employee-task-management-be/domain/staff"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/repositories"
)

type IStaffService interface {
	CreateEmployee(ctx context.Context, req auth.CreateEmployeeRequest) (staff.Employee, error)
	GetEmployee(id string) (staff.Employee, error)
	ListEmployees() ([]staff.Employee, error)
	UpdateEmployee(id string, req auth.CreateEmployeeRequest) error
	DeleteEmployee(id string) error
	UpdateWorkSchedule(id string, schedule staff.WorkSchedule) error
}

type StaffService struct {
	employees repositories.IEmployeeRepository
	email     contract.IEmailSender
}

func NewStaffService(employees repositories.IEmployeeRepository,
	email contract.IEmailSender) *StaffService {
	return &StaffService{employees: employees, email: email}
}

// CreateEmployee registers a new employee with a generated access code and
// emails the code so they can log in. The email uniqueness check lives in
// the repository write, so two concurrent creates cannot both win.
func (s *StaffService) CreateEmployee(ctx context.Context, req auth.CreateEmployeeRequest) (staff.Employee, error) {
	code, err := auth.GenerateAccessCode()
	if err != nil {
		return staff.Employee{}, err
	}

	employee := staff.Employee{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		AccessCode:   code,
		IsActive:     true,
		WorkSchedule: staff.DefaultWorkSchedule(),
	}
	created, err := s.employees.Create(employee)
	if err != nil {
		return staff.Employee{}, err
	}

	if err = s.email.SendAccessCode(ctx, created.Name, created.Email, code); err != nil {
		return staff.Employee{}, fmt.Errorf("employee created but email delivery failed: %w", err)
	}
	return created, nil
}

func (s *StaffService) GetEmployee(id string) (staff.Employee, error) {
	employee, found, err := s.employees.Get(id)
	if err != nil {
		return staff.Employee{}, err
	}
	if !found {
		return staff.Employee{}, fmt.Errorf("%w: employee", errors.ErrNotFound)
	}
	return employee, nil
}

func (s *StaffService) ListEmployees() ([]staff.Employee, error) {
	return s.employees.ListActive()
}

// UpdateEmployee rewrites the mutable profile fields. Identity fields
// (access code, activity, schedule, timestamps) are carried over untouched.
func (s *StaffService) UpdateEmployee(id string, req auth.CreateEmployeeRequest) error {
	employee, found, err := s.employees.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: employee", errors.ErrNotFound)
	}

	if req.Email != employee.Email {
		conflict, exists, err := s.employees.GetByEmail(req.Email)
		if err != nil {
			return err
		}
		if exists && conflict.ID != id {
			return errors.ErrEmailTaken
		}
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Role = req.Role
	if req.PhoneNumber != "" {
		employee.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		employee.Address = req.Address
	}
	return s.employees.Update(employee)
}

func (s *StaffService) DeleteEmployee(id string) error {
	return s.employees.Delete(id)
}

func (s *StaffService) UpdateWorkSchedule(id string, schedule staff.WorkSchedule) error {
	employee, found, err := s.employees.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: employee", errors.ErrNotFound)
	}
	employee.WorkSchedule = schedule
	return s.employees.Update(employee)
}
