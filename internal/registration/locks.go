package registration

import "sync"

// eventLocks hands out one mutex per event ID.
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *eventLocks) lock(eventID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
