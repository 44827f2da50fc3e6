package kvstore

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value   string
	touched time.Time
}

// Memory is a mutex-guarded in-memory Store. Guest sessions are the only
// writer-heavy user and each request touches a single key, so a plain map
// with one lock is enough.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	return e.value, ok
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: value, touched: time.Now()}
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// DeletePrefix removes every key under the given prefix and reports how many
// entries went away. Used to tear down a whole guest session at once.
func (m *Memory) DeletePrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
			n++
		}
	}

	return n
}

// EvictIdle drops entries that haven't been written for longer than ttl and
// returns the number of evicted entries. The guest cleanup job calls this
// periodically so abandoned guest sessions don't pile up.
func (m *Memory) EvictIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, e := range m.entries {
		if time.Since(e.touched) > ttl {
			delete(m.entries, k)
			n++
		}
	}

	return n
}

// Len reports the number of stored entries
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
