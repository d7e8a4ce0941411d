// Package kvstore provides the on-device key/value storage the progression
// engine persists into. Stores are synchronous and total: backend failures are
// logged and surface as a missing key or a dropped write, never as an error.
package kvstore

import "sync"

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Memory is a process-local Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Clear drops every key, the equivalent of wiping app storage.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
}
