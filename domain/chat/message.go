// Package chat contains core concepts of the group chat.
// This file defines Message records and their read-state rules.
// Messages are immutable except for the single sent -> read transition.
package chat

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSent Status = "sent"
	StatusRead Status = "read"
)

// Message is a persisted chat record. ID is the one canonical identifier:
// it is assigned once at ingest and reused for storage keys, wire payloads
// and read-receipt lookups.
type Message struct {
	ID       uuid.UUID
	GroupID  string
	Sender   string
	SenderID string
	Content  string
	Status   Status
	IsRead   bool
	ReadAt   *time.Time
	// Timestamp is assigned by the store at write time, never by the client.
	// It is the authoritative ordering key within a group.
	Timestamp time.Time
}

// MarkRead applies the one allowed transition. The first read wins:
// marking an already-read message keeps the original ReadAt.
// It keeps IsRead, Status and ReadAt consistent with each other.
func (m *Message) MarkRead(at time.Time) {
	if m.IsRead {
		return
	}
	m.IsRead = true
	m.Status = StatusRead
	m.ReadAt = &at
}
