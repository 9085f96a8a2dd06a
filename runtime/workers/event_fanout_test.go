package workers_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/domain/event"
	"github.com/gachip90/employee-task-management-be/internal"
	"github.com/gachip90/employee-task-management-be/observability"
	rt "github.com/gachip90/employee-task-management-be/runtime"
	"github.com/gachip90/employee-task-management-be/runtime/workers"
	"github.com/gachip90/employee-task-management-be/sink"
)

func received(group, content string) event.MessageReceived {
	return event.MessageReceived{Message: chat.Message{
		ID:        uuid.New(),
		GroupID:   group,
		Sender:    "A",
		SenderID:  "u1",
		Content:   content,
		Status:    chat.StatusSent,
		Timestamp: time.Now().UTC(),
	}}
}

func TestEventFanout_Delivers_Only_To_The_Group(t *testing.T) {
	req := require.New(t)
	log := internal.NewLogger("debug")
	registry := rt.NewRegistry()
	monitor := observability.NewMonitor()

	// Given B in room42 and C in room99
	sinkB := sink.NewConnectionSink(4)
	sinkC := sink.NewConnectionSink(4)
	registry.Join("conn-b", "room42", sinkB)
	registry.Join("conn-c", "room99", sinkC)

	fanout := workers.NewEventFanout(log, make(chan event.DomainEvent), registry, monitor)

	// When an event for room42 is fanned out
	fanout.Fanout(context.Background(), received("room42", "hi"))

	// Then B received exactly one event
	req.Len(sinkB.Events, 1)
	evt := <-sinkB.Events
	req.Equal("hi", evt.(event.MessageReceived).Message.Content)

	// And C received nothing
	req.Empty(sinkC.Events)
}

func TestEventFanout_Preserves_Per_Connection_Order(t *testing.T) {
	req := require.New(t)
	log := internal.NewLogger("debug")
	registry := rt.NewRegistry()
	monitor := observability.NewMonitor()

	connection := sink.NewConnectionSink(8)
	registry.Join("conn-a", "room42", connection)

	fanout := workers.NewEventFanout(log, make(chan event.DomainEvent), registry, monitor)

	// When several events are fanned out in sequence
	for _, content := range []string{"one", "two", "three"} {
		fanout.Fanout(context.Background(), received("room42", content))
	}

	// Then the connection drains them in submission order
	for _, expected := range []string{"one", "two", "three"} {
		evt := <-connection.Events
		req.Equal(expected, evt.(event.MessageReceived).Message.Content)
	}
}

func TestEventFanout_Full_Sink_Drops_Without_Blocking(t *testing.T) {
	req := require.New(t)
	log := internal.NewLogger("debug")
	registry := rt.NewRegistry()
	monitor := observability.NewMonitor()

	// Given a connection whose buffer holds one event
	connection := sink.NewConnectionSink(1)
	registry.Join("conn-a", "room42", connection)

	fanout := workers.NewEventFanout(log, make(chan event.DomainEvent), registry, monitor)

	// When two events arrive back to back
	fanout.Fanout(context.Background(), received("room42", "kept"))
	fanout.Fanout(context.Background(), received("room42", "dropped"))

	// Then the second one was dropped and counted
	req.Len(connection.Events, 1)
	req.Equal(uint64(1), monitor.Snapshot().EventsDropped)
}

func TestEventFanout_Run_Stops_On_Context_Cancel(t *testing.T) {
	req := require.New(t)
	log := internal.NewLogger("debug")
	fanout := workers.NewEventFanout(log, make(chan event.DomainEvent), rt.NewRegistry(), observability.NewMonitor())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fanout.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("fanout did not stop on context cancel")
	}
}
