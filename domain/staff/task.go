package staff

import "time"

type Task struct {
	ID           string
	Title        string
	Description  string
	AssignedName string
	EmployeeID   string
	Status       string
	CreatedAt    time.Time
}
