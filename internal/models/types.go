// internal/models/types.go
package models

// Provider identifies an upstream source of models
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
	ProviderLMStudio   Provider = "lmstudio" // local runtime
)

// Capabilities are the feature tags shown next to a model
type Capabilities struct {
	Thinking  bool `json:"thinking,omitempty"`
	Streaming bool `json:"streaming"`
	Tools     bool `json:"tools"`
	Reasoning bool `json:"reasoning,omitempty"`
	Agents    bool `json:"agents,omitempty"`
	Coding    bool `json:"coding,omitempty"`
}

// Tags returns the display tags for the optional capabilities, in a fixed order.
func (c Capabilities) Tags() []string {
	var tags []string
	if c.Thinking {
		tags = append(tags, "thinking")
	}
	if c.Reasoning {
		tags = append(tags, "reasoning")
	}
	if c.Coding {
		tags = append(tags, "coding")
	}
	if c.Agents {
		tags = append(tags, "agents")
	}
	return tags
}

// ModelInfo is an immutable catalog entry
type ModelInfo struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Provider     Provider     `json:"provider"`
	Model        string       `json:"model"` // provider-specific identifier
	Description  string       `json:"description"`
	Capabilities Capabilities `json:"capabilities"`
}

// Config is the LLM configuration a click on this model produces.
func (m ModelInfo) Config() LLMConfig {
	return LLMConfig{Provider: m.Provider, Model: m.Model}
}

// LLMConfig is the active provider/model pair sent to the agent backend
type LLMConfig struct {
	Provider    Provider `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ProviderInfo contains display information for a provider
type ProviderInfo struct {
	ID          Provider
	Name        string
	Description string
}
