// Package selection holds the user's model choice and MCP tool allowlist.
// Transitions are pure functions; the State containers add locking and
// persistence on top.
package selection

import (
	"sync"

	"github.com/sirupsen/logrus"

	"agentchat/internal/models"
	"agentchat/internal/prefs"
)

// ModelSelection is the active model together with the config sent to the
// backend. Both always change together.
type ModelSelection struct {
	Config models.LLMConfig `json:"config"`
	Model  models.ModelInfo `json:"model"`
}

// DefaultModelSelection selects the catalog default.
func DefaultModelSelection() ModelSelection {
	m := models.Default()
	return ModelSelection{Config: m.Config(), Model: m}
}

// ApplyModel replaces both halves of the selection. The pairing is not
// validated; call sites build it from the catalog.
func ApplyModel(_ ModelSelection, cfg models.LLMConfig, model models.ModelInfo) ModelSelection {
	return ModelSelection{Config: cfg, Model: model}
}

// ModelState is the model selection shared by the UI.
type ModelState struct {
	mu          sync.RWMutex
	store       prefs.Store
	log         logrus.FieldLogger
	current     ModelSelection
	initialized bool
}

func NewModelState(store prefs.Store, log logrus.FieldLogger) *ModelState {
	return &ModelState{
		store:   store,
		log:     log,
		current: DefaultModelSelection(),
	}
}

// Init loads the persisted selection. Only the first call has any effect.
func (s *ModelState) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	var saved ModelSelection
	found, err := prefs.GetJSON(s.store, prefs.KeySelectedModel, &saved)
	if err != nil {
		s.log.WithError(err).Error("loading saved model")
		return
	}
	if !found {
		return
	}
	if saved.Model.ID == "" || saved.Config.Provider == "" {
		s.log.WithField("key", prefs.KeySelectedModel).Warn("ignoring incomplete saved model")
		return
	}
	s.current = saved
}

// SetModel replaces the selection and persists it. A persistence failure is
// logged; the new selection stays in effect.
func (s *ModelState) SetModel(cfg models.LLMConfig, model models.ModelInfo) ModelSelection {
	s.mu.Lock()
	s.current = ApplyModel(s.current, cfg, model)
	snap := s.current
	s.mu.Unlock()

	if err := prefs.SetJSON(s.store, prefs.KeySelectedModel, snap); err != nil {
		s.log.WithError(err).WithField("model", model.ID).Error("saving model selection")
	}
	return snap
}

// SelectModel is the model-click path: the config comes from the model.
func (s *ModelState) SelectModel(model models.ModelInfo) ModelSelection {
	return s.SetModel(model.Config(), model)
}

// SelectProvider is the provider-change path: the provider's first model is
// selected. ok is false, and nothing changes, for a provider with no models.
func (s *ModelState) SelectProvider(p models.Provider) (ModelSelection, bool) {
	cfg, model, ok := models.FirstConfig(p)
	if !ok {
		return s.Snapshot(), false
	}
	return s.SetModel(cfg, model), true
}

// Snapshot returns the current selection
func (s *ModelState) Snapshot() ModelSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
