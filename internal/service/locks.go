package service

import "sync"

// locationLocks hands out one mutex per repository location. Entries are
// dropped once no goroutine holds or waits for them.
type locationLocks struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func newLocationLocks() *locationLocks {
	return &locationLocks{locks: make(map[string]*refLock)}
}

// Lock blocks until the location is exclusively held and returns the release func.
func (l *locationLocks) Lock(location string) func() {
	l.mu.Lock()
	rl, ok := l.locks[location]
	if !ok {
		rl = &refLock{}
		l.locks[location] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()
	return func() {
		rl.mu.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, location)
		}
		l.mu.Unlock()
	}
}

func (l *locationLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
