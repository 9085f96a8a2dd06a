package workers

import (
	"context"
	"log/slog"

	"github.com/gachip90/employee-task-management-be/contract"
	"github.com/gachip90/employee-task-management-be/domain/event"
	"github.com/gachip90/employee-task-management-be/observability"
)

// EventFanout delivers domain events to every connection currently joined
// to the event's group, and never to connections outside it.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. A connection whose sink rejects the event (slow
// consumer, full buffer) simply misses it and recovers via the history
// endpoint. Per-connection ordering is preserved because each sink has a
// single writer draining it.
type EventFanout struct {
	log      *slog.Logger
	events   chan event.DomainEvent
	registry contract.IRegistry
	monitor  *observability.Monitor
}

func NewEventFanout(log *slog.Logger, events chan event.DomainEvent,
	registry contract.IRegistry, monitor *observability.Monitor) *EventFanout {
	return &EventFanout{log: log, events: events, registry: registry, monitor: monitor}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout One delivery attempt for each member of the event's group
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.registry.SinksForGroup(evt.GroupID()) {
		if err := sink.Consume(ctx, evt); err != nil {
			w.monitor.IncrEventsDropped()
			w.log.Debug("Event dropped for connection", "group", evt.GroupID(), "error", err)
		}
	}
}
