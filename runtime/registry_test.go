package runtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/domain/event"
)

type Sink struct{}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func TestRegistry_Join_One_Group_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	sink := Sink{}

	// Given no connection is registered
	// And no group exists
	req.Empty(registry.sessions)
	req.Empty(registry.groupMembers)

	// When a connection joins a group
	registry.Join(connID, "room42", sink)

	// Then
	req.Len(registry.sessions, 1)
	req.Equal(sink, registry.sessions[connID])

	req.Len(registry.groupMembers, 1)
	req.Contains(registry.groupMembers["room42"], connID)

	req.Len(registry.SinksForGroup("room42"), 1)
	req.Contains(registry.SinksForGroup("room42"), sink)
}

func TestRegistry_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()

	// When the same connection joins the same group twice
	registry.Join(connID, "room42", Sink{})
	registry.Join(connID, "room42", Sink{})

	// Then membership is unchanged
	req.Len(registry.groupMembers["room42"], 1)
	req.Len(registry.SinksForGroup("room42"), 1)
}

func TestRegistry_Join_Multiple_Groups(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	sink := Sink{}

	// When one connection joins two groups
	registry.Join(connID, "room42", sink)
	registry.Join(connID, "room99", sink)

	// Then it is a member of both, with a single session entry
	req.Len(registry.sessions, 1)
	req.Len(registry.SinksForGroup("room42"), 1)
	req.Len(registry.SinksForGroup("room99"), 1)
}

func TestRegistry_LeaveAll_Removes_From_Every_Group(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	leaving := uuid.NewString()
	staying := uuid.NewString()

	// Given a connection in two groups, sharing one of them
	registry.Join(leaving, "room42", Sink{})
	registry.Join(leaving, "room99", Sink{})
	registry.Join(staying, "room42", Sink{})

	// When the connection disconnects
	registry.LeaveAll(leaving)

	// Then it is absent from every group immediately
	req.Len(registry.sessions, 1)
	req.Len(registry.SinksForGroup("room42"), 1)
	req.Nil(registry.SinksForGroup("room99"))

	// And the emptied group was cleaned up entirely
	req.NotContains(registry.groupMembers, "room99")
}

func TestRegistry_SinksForGroup_Unknown_Group(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Nil(registry.SinksForGroup("nowhere"))
}
