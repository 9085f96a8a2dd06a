package server

import (
	"time"

	"github.com/samber/lo"

	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/domain/staff"
)

// messagePayload is the wire shape of a chat message, shared by the REST
// history endpoint and the receive_message push event. messageId carries
// the canonical id; timestamps serialize as ISO-8601.
type messagePayload struct {
	MessageID string     `json:"messageId"`
	GroupID   string     `json:"groupId"`
	Sender    string     `json:"sender"`
	SenderID  string     `json:"senderId"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt"`
	Timestamp time.Time  `json:"timestamp"`
}

func toMessagePayload(message chat.Message) messagePayload {
	return messagePayload{
		MessageID: message.ID.String(),
		GroupID:   message.GroupID,
		Sender:    message.Sender,
		SenderID:  message.SenderID,
		Message:   message.Content,
		Status:    string(message.Status),
		IsRead:    message.IsRead,
		ReadAt:    message.ReadAt,
		Timestamp: message.Timestamp,
	}
}

func toMessagePayloads(messages []chat.Message) []messagePayload {
	payloads := make([]messagePayload, 0, len(messages))
	return append(payloads, lo.Map(messages, func(item chat.Message, _ int) messagePayload {
		return toMessagePayload(item)
	})...)
}

// employeePayload never exposes the pending access code.
type employeePayload struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Role           string            `json:"role"`
	PhoneNumber    string            `json:"phoneNumber"`
	Address        string            `json:"address"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastLogin      *time.Time        `json:"lastLogin"`
	WorkSchedule   map[string]string `json:"workSchedule"`
	ProfilePicture string            `json:"profilePicture"`
}

func toEmployeePayload(employee staff.Employee) employeePayload {
	return employeePayload{
		ID:             employee.ID,
		Name:           employee.Name,
		Email:          employee.Email,
		Role:           employee.Role,
		PhoneNumber:    employee.PhoneNumber,
		Address:        employee.Address,
		IsActive:       employee.IsActive,
		CreatedAt:      employee.CreatedAt,
		LastLogin:      employee.LastLogin,
		WorkSchedule:   employee.WorkSchedule,
		ProfilePicture: employee.ProfilePicture,
	}
}

func toEmployeePayloads(employees []staff.Employee) []employeePayload {
	payloads := make([]employeePayload, 0, len(employees))
	return append(payloads, lo.Map(employees, func(item staff.Employee, _ int) employeePayload {
		return toEmployeePayload(item)
	})...)
}

type taskPayload struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AssignedName string    `json:"assignedName"`
	EmployeeID   string    `json:"employeeId"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toTaskPayloads(tasks []staff.Task) []taskPayload {
	payloads := make([]taskPayload, 0, len(tasks))
	return append(payloads, lo.Map(tasks, func(item staff.Task, _ int) taskPayload {
		return taskPayload{
			ID:           item.ID,
			Title:        item.Title,
			Description:  item.Description,
			AssignedName: item.AssignedName,
			EmployeeID:   item.EmployeeID,
			Status:       item.Status,
			CreatedAt:    item.CreatedAt,
		}
	})...)
}
