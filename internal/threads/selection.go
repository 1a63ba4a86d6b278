package threads

import (
	"sync"

	"github.com/sirupsen/logrus"

	"agentchat/internal/prefs"
)

// StoredSelection remembers the open thread across restarts.
type StoredSelection struct {
	mu    sync.RWMutex
	store prefs.Store
	log   logrus.FieldLogger
	id    string
}

func NewStoredSelection(store prefs.Store, log logrus.FieldLogger) *StoredSelection {
	s := &StoredSelection{store: store, log: log}
	id, _, err := store.Get(prefs.KeySelectedThread)
	if err != nil {
		log.WithError(err).Warn("reading selected thread")
	}
	s.id = id
	return s
}

func (s *StoredSelection) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *StoredSelection) Set(threadID string) {
	if threadID == "" {
		s.Clear()
		return
	}
	s.mu.Lock()
	s.id = threadID
	s.mu.Unlock()

	if err := s.store.Set(prefs.KeySelectedThread, threadID); err != nil {
		s.log.WithError(err).Warn("saving selected thread")
	}
}

func (s *StoredSelection) Clear() {
	s.mu.Lock()
	s.id = ""
	s.mu.Unlock()

	if err := s.store.Remove(prefs.KeySelectedThread); err != nil {
		s.log.WithError(err).Warn("clearing selected thread")
	}
}
