package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/auth"
	"github.com/gachip90/employee-task-management-be/domain/staff"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/repositories"
)

type ITaskService interface {
	CreateTask(req auth.TaskRequest) (staff.Task, error)
	ListTasks(employeeID string) ([]staff.Task, error)
	UpdateTask(id string, req auth.TaskRequest) error
	DeleteTask(id string) error
}

type TaskService struct {
	tasks     repositories.ITaskRepository
	employees repositories.IEmployeeRepository
}

func NewTaskService(tasks repositories.ITaskRepository,
	employees repositories.IEmployeeRepository) *TaskService {
	return &TaskService{tasks: tasks, employees: employees}
}

// CreateTask refuses tasks assigned to employees that do not exist.
func (s *TaskService) CreateTask(req auth.TaskRequest) (staff.Task, error) {
	if err := s.ensureEmployee(req.EmployeeID); err != nil {
		return staff.Task{}, err
	}
	return s.tasks.Create(staff.Task{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		AssignedName: req.AssignedName,
		EmployeeID:   req.EmployeeID,
		Status:       req.Status,
	})
}

func (s *TaskService) ListTasks(employeeID string) ([]staff.Task, error) {
	return s.tasks.List(employeeID)
}

func (s *TaskService) UpdateTask(id string, req auth.TaskRequest) error {
	if err := s.ensureEmployee(req.EmployeeID); err != nil {
		return err
	}
	return s.tasks.Update(staff.Task{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		AssignedName: req.AssignedName,
		EmployeeID:   req.EmployeeID,
		Status:       req.Status,
	})
}

func (s *TaskService) DeleteTask(id string) error {
	return s.tasks.Delete(id)
}

func (s *TaskService) ensureEmployee(id string) error {
	_, found, err := s.employees.Get(id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: employee", errors.ErrNotFound)
	}
	return nil
}
