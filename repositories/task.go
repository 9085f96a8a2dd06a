package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/gachip90/employee-task-management-be/domain/staff"
	apperrors "github.com/gachip90/employee-task-management-be/errors"
)

type ITaskRepository interface {
	Create(task staff.Task) (staff.Task, error)
	Get(id string) (staff.Task, bool, error)
	List(employeeID string) ([]staff.Task, error)
	Update(task staff.Task) error
	Delete(id string) error
}

type TaskRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewTaskRepository(db *badger.DB, log *slog.Logger) TaskRepository {
	return TaskRepository{db: db, log: log}
}

type diskTask struct {
	ID           string    `cbor:"id"`
	Title        string    `cbor:"title"`
	Description  string    `cbor:"description"`
	AssignedName string    `cbor:"assigned_name"`
	EmployeeID   string    `cbor:"employee_id"`
	Status       string    `cbor:"status"`
	CreatedAt    time.Time `cbor:"created_at"`
}

func taskKey(id string) []byte {
	return []byte(fmt.Sprintf("task:%s", id))
}

func (r TaskRepository) Create(task staff.Task) (staff.Task, error) {
	task.CreatedAt = time.Now().UTC()
	bytes, err := encode(fromTask(task))
	if err != nil {
		return staff.Task{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(taskKey(task.ID), bytes)
	})
	if err != nil {
		return staff.Task{}, err
	}
	return task, nil
}

func (r TaskRepository) Get(id string) (staff.Task, bool, error) {
	var task staff.Task
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(taskKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			var record diskTask
			if err := decode(value, &record); err != nil {
				return err
			}
			task, found = toTask(record), true
			return nil
		})
	})
	return task, found, err
}

// List returns every task, optionally filtered by assignee.
func (r TaskRepository) List(employeeID string) ([]staff.Task, error) {
	var tasks []staff.Task
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("task:")
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record diskTask
				if err := decode(value, &record); err != nil {
					return err
				}
				if employeeID == "" || record.EmployeeID == employeeID {
					tasks = append(tasks, toTask(record))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return tasks, err
}

func (r TaskRepository) Update(task staff.Task) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(taskKey(task.ID))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		// Preserve the original creation time.
		var previous diskTask
		if err = item.Value(func(value []byte) error {
			return decode(value, &previous)
		}); err != nil {
			return err
		}
		task.CreatedAt = previous.CreatedAt
		bytes, err := encode(fromTask(task))
		if err != nil {
			return err
		}
		return txn.Set(taskKey(task.ID), bytes)
	})
}

func (r TaskRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(taskKey(id)); err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(taskKey(id))
	})
}

func fromTask(task staff.Task) diskTask {
	return diskTask{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedName: task.AssignedName,
		EmployeeID:   task.EmployeeID,
		Status:       task.Status,
		CreatedAt:    task.CreatedAt,
	}
}

func toTask(record diskTask) staff.Task {
	return staff.Task{
		ID:           record.ID,
		Title:        record.Title,
		Description:  record.Description,
		AssignedName: record.AssignedName,
		EmployeeID:   record.EmployeeID,
		Status:       record.Status,
		CreatedAt:    record.CreatedAt.UTC(),
	}
}
