// Package staff contains the small-business directory: owners verified by
// one-time access codes, their employees, and the tasks assigned to them.
package staff

import "time"

// WorkSchedule maps lowercase weekday names to shift strings ("09:00-17:00")
// or "off".
type WorkSchedule map[string]string

// DefaultWorkSchedule is applied to every newly created employee.
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		"monday":    "09:00-17:00",
		"tuesday":   "09:00-17:00",
		"wednesday": "09:00-17:00",
		"thursday":  "09:00-17:00",
		"friday":    "09:00-17:00",
		"saturday":  "off",
		"sunday":    "off",
	}
}

type Employee struct {
	ID          string
	Name        string
	Email       string
	Role        string
	PhoneNumber string
	Address     string
	// AccessCode is the pending one-time code; cleared on validation.
	// It must never leave the service layer in API responses.
	AccessCode     string
	IsActive       bool
	CreatedAt      time.Time
	LastLogin      *time.Time
	WorkSchedule   WorkSchedule
	ProfilePicture string
}
