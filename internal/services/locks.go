package services

import "sync"

// sessionLocks serializes work per session. An entry lives only while some
// caller holds or waits on it, so a session never ends up with two mutexes.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) acquire(sessionID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		defer l.mu.Unlock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, sessionID)
		}
	}
}

func (l *sessionLocks) refs(sessionID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sl, ok := l.locks[sessionID]; ok {
		return sl.refs
	}
	return 0
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
