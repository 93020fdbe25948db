package storage

import "sync"

// KeyedMutex serializes read-modify-write cycles per user id. Each
// service holds its own instance, so the profile and the cycle blobs can
// be updated concurrently for the same user, but never the same blob.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// Lock acquires the mutex for id and returns the matching unlock func.
func (k *KeyedMutex) Lock(id uint) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[uint]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
