package services

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes work per auction id. Every mutating
// read-modify-write on an auction (bids, moderation, sweep transitions)
// runs under its lock, so two racing bids can never both win and a closing
// sweep can never observe a half-applied bid.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*lockEntry)}
}

// lock acquires the mutex for id and returns its unlock func. Entries are
// refcounted and removed once the last holder releases, so the map stays
// proportional to in-flight requests.
func (k *keyedMutex) lock(id uuid.UUID) func() {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
