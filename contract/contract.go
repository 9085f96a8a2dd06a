//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/gachip90/employee-task-management-be/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks which live connection belongs to which groups.
// Membership is ephemeral: it lives for the connection's lifetime and is
// rebuilt from scratch on restart, so clients must rejoin after reconnect.
type IRegistry interface {
	SinksForGroup(groupID string) []EventSink
	Join(connID string, groupID string, sink EventSink)
	LeaveAll(connID string)
}

// ISMSSender and IEmailSender are the outbound delivery collaborators.
// Actual SMS/email transport lives outside this system.
type ISMSSender interface {
	SendAccessCode(ctx context.Context, phoneNumber, code string) (string, error)
}

type IEmailSender interface {
	SendAccessCode(ctx context.Context, name, email, code string) error
}
