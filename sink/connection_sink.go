package sink

import (
	"context"

	"github.com/gachip90/employee-task-management-be/domain/event"
	"github.com/gachip90/employee-task-management-be/errors"
)

// Connection bridges the fanout engine and one websocket connection.
// Events pile up in a buffered channel drained by the connection's single
// writer goroutine, which preserves per-connection delivery order.
type Connection struct {
	Events chan event.DomainEvent
}

func NewConnectionSink(bufferSize int) *Connection {
	return &Connection{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by fanout.
// Redirect the event through the concerned owner of the channel;
// the websocket writer will take it from now. A full buffer means the
// client reads too slowly: the event is dropped rather than blocking the
// fanout of everyone else.
func (s *Connection) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSlowConsumer
	}
}
