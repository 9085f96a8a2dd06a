package runtime

import (
	"sync"

	"github.com/gachip90/employee-task-management-be/contract"
)

type Set map[string]struct{}

// Registry maps live connections to the group channels they joined.
// State is process-local and rebuilt from scratch on restart: clients
// must rejoin after a reconnect.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]contract.EventSink // map connection -> sink
	groupMembers map[string]Set                // map group -> connections
	memberGroups map[string]Set                // map connection -> groups, for LeaveAll
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:     make(map[string]contract.EventSink),
		groupMembers: make(map[string]Set),
		memberGroups: make(map[string]Set),
	}
}

// SinksForGroup retrieves all active communication channels for a group.
// It performs a two-step lookup:
// 1. Identifies connection IDs associated with the group via groupMembers.
// 2. Resolves those IDs into actual EventSinks using the sessions map.
//
// This decoupled approach ensures that even if a connection is in multiple
// groups, its sink is managed in a single place.
// Returns nil if the group doesn't exist or has no members.
func (r *Registry) SinksForGroup(groupID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groupMembers[groupID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for connID := range members {
		if sink, exists := r.sessions[connID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Join registers a connection's sink and adds it to a group's membership
// set. Joining the same group twice has no additional effect.
// If the group does not yet exist in the registry, it is initialized on the fly.
func (r *Registry) Join(connID string, groupID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connID] = sink

	if _, ok := r.groupMembers[groupID]; !ok {
		r.groupMembers[groupID] = make(Set)
	}
	r.groupMembers[groupID][connID] = struct{}{}

	if _, ok := r.memberGroups[connID]; !ok {
		r.memberGroups[connID] = make(Set)
	}
	r.memberGroups[connID][groupID] = struct{}{}
}

// LeaveAll removes a connection from every group it belongs to; invoked on
// disconnect. It cleans up the session and ensures no empty sets are left
// in the group map to prevent memory leaks over time.
func (r *Registry) LeaveAll(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, connID)

	for groupID := range r.memberGroups[connID] {
		if members, ok := r.groupMembers[groupID]; ok {
			delete(members, connID)

			// If no one is left in the group, remove the entry entirely
			if len(members) == 0 {
				delete(r.groupMembers, groupID)
			}
		}
	}
	delete(r.memberGroups, connID)
}

// Connections reports the number of registered connections.
func (r *Registry) Connections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
