package sink

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/domain/event"
)

// Timeline replays delivered events into a local message list, applying
// read receipts as they arrive. Used as an in-process consumer in tests.
type Timeline struct {
	mu       sync.Mutex
	Owner    string
	Messages []chat.Message
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch evt := e.(type) {
	case event.MessageReceived:
		t.Messages = append(t.Messages, evt.Message)
	case event.MessageRead:
		t.markRead(evt.MessageID, evt)
	}
	return nil
}

func (t *Timeline) markRead(id uuid.UUID, evt event.MessageRead) {
	for i := range t.Messages {
		if t.Messages[i].ID == id {
			t.Messages[i].MarkRead(evt.ReadAt)
		}
	}
}

// Snapshot returns a copy safe to inspect while fanout keeps running.
func (t *Timeline) Snapshot() []chat.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]chat.Message, len(t.Messages))
	copy(out, t.Messages)
	return out
}
