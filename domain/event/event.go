package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/domain/chat"
)

// DomainEvent is anything the fanout engine can deliver to group members.
type DomainEvent interface {
	GroupID() string
}

// MessageReceived carries the persisted record, including the
// store-assigned timestamp. It is never rebuilt at broadcast time.
type MessageReceived struct {
	Message chat.Message
}

func (e MessageReceived) GroupID() string {
	return e.Message.GroupID
}

type MessageRead struct {
	Group     string
	MessageID uuid.UUID
	ReadAt    time.Time
}

func (e MessageRead) GroupID() string {
	return e.Group
}

// IngestFailed is only ever delivered to the originating connection,
// and only when its error policy asks for it. It never fans out.
type IngestFailed struct {
	Group  string
	Reason string
}

func (e IngestFailed) GroupID() string {
	return e.Group
}
