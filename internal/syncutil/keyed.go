// Package syncutil provides per-key mutual exclusion, used to keep all work
// for a single chat sequential while unrelated chats proceed concurrently.
package syncutil

import "sync"

// KeyedMutex hands out one mutex per key. Mutexes are retained for the
// process lifetime; the key space (active chats) is small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns an unlock func.
func (k *KeyedMutex) Lock(key int64) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
