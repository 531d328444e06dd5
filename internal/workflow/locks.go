package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// entityLocks serializes fold+append per entity so two concurrent transitions
// cannot both read the same current state and append contradictory events.
type entityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[uuid.UUID]*entityLock)}
}

// acquire locks the entity and returns its release func. Lock entries are
// reference counted and removed once idle so the map does not grow with the
// number of entities ever touched.
func (l *entityLocks) acquire(entityID uuid.UUID) func() {
	l.mu.Lock()
	el, ok := l.locks[entityID]
	if !ok {
		el = &entityLock{}
		l.locks[entityID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()
	return func() {
		el.mu.Unlock()
		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, entityID)
		}
		l.mu.Unlock()
	}
}
