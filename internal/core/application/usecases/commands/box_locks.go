package commands

import "sync"

// boxLocks serializes stock changes per box inside the process. The inventory
// API only accepts absolute stock values, so two decrements of the same box
// must not read the same starting stock.
type boxLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBoxLocks() *boxLocks {
	return &boxLocks{locks: make(map[string]*sync.Mutex)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *boxLocks) lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
