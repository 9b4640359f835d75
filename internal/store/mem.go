package store

import "sync"

// Mem is an in-memory Transient implementation. The reference daemon
// uses it directly; embedding daemons typically substitute a store
// backed by their control plane.
//
// Mem is safe for concurrent use.
type Mem struct {
	mu      sync.RWMutex
	ints    map[string]int
	strings map[string]string
	bools   map[string]bool
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{
		ints:    make(map[string]int),
		strings: make(map[string]string),
		bools:   make(map[string]bool),
	}
}

// StoreInt writes an integer value.
func (m *Mem) StoreInt(key string, v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints[key] = v
}

// LoadInt reads an integer value.
func (m *Mem) LoadInt(key string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.ints[key]
	return v, ok
}

// StoreString writes a string value.
func (m *Mem) StoreString(key string, v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strings[key] = v
}

// LoadString reads a string value.
func (m *Mem) LoadString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.strings[key]
	return v, ok
}

// StoreBool writes a boolean value.
func (m *Mem) StoreBool(key string, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = v
}

// LoadBool reads a boolean value.
func (m *Mem) LoadBool(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.bools[key]
	return v, ok
}
