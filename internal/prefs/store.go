// Package prefs is the key-value blob store behind every persisted UI
// preference: the session user, the model selection and the MCP selection.
package prefs

import (
	"encoding/json"
	"sync"
)

// Well-known keys.
const (
	KeyAuthUser        = "auth_user"
	KeySelectedModel   = "lg:selectedModel"
	KeyMCPSelection    = "mcp-selection"
	KeySelectedThread  = "ui:threadId"
	KeyChatHistoryOpen = "ui:chatHistoryOpen"
)

// Store is a string-keyed blob store. Any call may fail; callers are
// expected to log and carry on with in-memory state.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// GetJSON decodes the blob under key into v. found is false when the key is
// absent; a decode failure is returned as an error with found true.
func GetJSON(s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, err
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// MemoryStore keeps blobs in a map. It never fails.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
