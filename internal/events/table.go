package events

import (
	"sync"

	"go.uber.org/zap"
)

type Handler func(e Event)

type subscription struct {
	name    string
	handler Handler
}

// Table maps each event kind to its registered handlers.
// Handlers are identified by name: subscribing twice with the same name is a no-op.
type Table struct {
	lock     sync.RWMutex
	handlers map[Kind][]subscription
}

func NewTable() *Table {
	return &Table{
		handlers: make(map[Kind][]subscription),
	}
}

// Subscribe registers handler under name. It returns false if name is already subscribed to kind.
func (t *Table) Subscribe(kind Kind, name string, handler Handler) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	for _, s := range t.handlers[kind] {
		if s.name == name {
			return false
		}
	}

	t.handlers[kind] = append(t.handlers[kind], subscription{name: name, handler: handler})

	return true
}

// Unsubscribe removes the handler registered under name. It returns false if it was not found.
func (t *Table) Unsubscribe(kind Kind, name string) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	subs := t.handlers[kind]
	for i, s := range subs {
		if s.name == name {
			t.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}

	return false
}

// Emit calls the handlers of the event's kind in subscription order and returns how many were called.
func (t *Table) Emit(e Event) int {
	t.lock.RLock()
	subs := make([]subscription, len(t.handlers[e.Kind]))
	copy(subs, t.handlers[e.Kind])
	t.lock.RUnlock()

	if len(subs) == 0 {
		zap.S().Debugw("no handler for event", "event", e.String())
	}

	for _, s := range subs {
		s.handler(e)
	}

	return len(subs)
}

// Len returns the number of handlers subscribed to kind.
func (t *Table) Len(kind Kind) int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return len(t.handlers[kind])
}
