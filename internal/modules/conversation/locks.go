// README: Refcounted per-user locks serializing transition processing.
package conversation

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// userLocks hands out one mutex per user id and garbage-collects entries by
// reference counting, so the lock table does not grow with every phone
// number ever seen.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*lockEntry)}
}

// lock blocks until the user's lock is held and returns the release func.
func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &lockEntry{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
