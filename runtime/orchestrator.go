// Package runtime handles event production and propagation for the chat.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gachip90/employee-task-management-be/contract"
	"github.com/gachip90/employee-task-management-be/domain/chat"
	"github.com/gachip90/employee-task-management-be/domain/event"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/observability"
	"github.com/gachip90/employee-task-management-be/repositories"
	"github.com/gachip90/employee-task-management-be/runtime/workers"
)

// Orchestrator owns the ingest and read-receipt pipelines. Handlers call
// into it synchronously; successful store writes produce a domain event on
// the events channel, which the supervised EventFanout worker delivers to
// the registry members of the group.
type Orchestrator struct {
	log          *slog.Logger
	supervisor   contract.ISupervisor
	registry     contract.IRegistry
	repository   repositories.IMessageRepository
	monitor      *observability.Monitor
	events       chan event.DomainEvent
	storeTimeout time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IRegistry, repository repositories.IMessageRepository,
	monitor *observability.Monitor, bufferSize int, storeTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:          log,
		supervisor:   supervisor,
		registry:     registry,
		repository:   repository,
		monitor:      monitor,
		events:       make(chan event.DomainEvent, bufferSize),
		storeTimeout: storeTimeout,
	}
}

// Start launches the fanout worker under supervision. It returns once the
// supervisor is running; Stop cancels it.
func (o *Orchestrator) Start(ctx context.Context) {
	o.supervisor.Add(workers.NewEventFanout(o.log, o.events, o.registry, o.monitor))
	go o.supervisor.Run(ctx)
}

func (o *Orchestrator) Stop() {
	o.supervisor.Stop()
}

// JoinGroup subscribes a connection's sink to a group channel.
func (o *Orchestrator) JoinGroup(connID string, groupID string, sink contract.EventSink) {
	o.registry.Join(connID, groupID, sink)
}

// LeaveAll drops a connection from every group; invoked on disconnect.
func (o *Orchestrator) LeaveAll(connID string) {
	o.registry.LeaveAll(connID)
}

// SendMessage is the ingest pipeline: validate presence, persist with a
// store-assigned timestamp, then queue a MessageReceived event carrying the
// exact persisted record. The message id minted here is the one canonical
// identifier: storage key, wire payload and read-receipt lookup all use it.
func (o *Orchestrator) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if cmd.GroupID == "" || cmd.Sender == "" || cmd.SenderID == "" || cmd.Content == "" {
		return chat.Message{}, fmt.Errorf("%w: sender, senderId, groupId and content are required",
			errors.ErrMissingField)
	}

	message := chat.Message{
		ID:       uuid.New(),
		GroupID:  cmd.GroupID,
		Sender:   cmd.Sender,
		SenderID: cmd.SenderID,
		Content:  cmd.Content,
		Status:   chat.StatusSent,
	}

	var stored chat.Message
	err := o.withStoreTimeout(ctx, func() error {
		var err error
		stored, err = o.repository.Store(message)
		return err
	})
	if err != nil {
		return chat.Message{}, err
	}

	o.monitor.IncrMessagesIngested()
	o.publish(event.MessageReceived{Message: stored})
	return stored, nil
}

// ReadMessage is the read-receipt pipeline. A missing message is a silent
// no-op: no error, no state change, no broadcast. Re-marking an already
// read message leaves persisted state alone but still re-broadcasts the
// receipt (idempotent state, non-idempotent notification).
func (o *Orchestrator) ReadMessage(ctx context.Context, cmd chat.ReadMessageCommand) error {
	var message chat.Message
	var found bool
	err := o.withStoreTimeout(ctx, func() error {
		var err error
		message, found, err = o.repository.MarkRead(cmd.MessageID)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		o.log.Debug("Read receipt for unknown message", "message_id", cmd.MessageID, "group", cmd.GroupID)
		return nil
	}

	o.monitor.IncrReadReceipts()
	// The persisted record's group is authoritative, not the one the
	// client claims on the wire.
	o.publish(event.MessageRead{
		Group:     message.GroupID,
		MessageID: message.ID,
		ReadAt:    *message.ReadAt,
	})
	return nil
}

// GetMessages serves the pull-style history, ascending by timestamp.
// Unlike the push pipelines, failures here are reported to the caller.
func (o *Orchestrator) GetMessages(cmd chat.GetMessagesCommand) ([]chat.Message, error) {
	if cmd.GroupID == "" {
		return nil, fmt.Errorf("%w: groupId is required", errors.ErrMissingField)
	}
	return o.repository.ListByGroup(cmd.GroupID)
}

func (o *Orchestrator) publish(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.monitor.IncrEventsDropped()
		o.log.Warn(fmt.Sprintf("Event channel full for group %s, dropping event", evt.GroupID()))
	}
}

// withStoreTimeout bounds a store call so a stalled store delays one event
// instead of wedging the pipeline forever. The call itself keeps running in
// its goroutine; we only stop waiting for it.
func (o *Orchestrator) withStoreTimeout(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, o.storeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.ErrStoreTimeout
	}
}
