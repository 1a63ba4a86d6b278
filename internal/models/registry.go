// internal/models/registry.go
package models

import "strings"

// Direct OpenAI is the cheapest route and supplies the default model.
var openAIModels = []ModelInfo{
	{
		ID:           "openai-gpt-4o-mini",
		Name:         "GPT-4o Mini",
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o-mini",
		Description:  "Fast, low-cost OpenAI model (direct, no commission)",
		Capabilities: Capabilities{Streaming: true, Tools: true},
	},
	{
		ID:           "openai-gpt-4o",
		Name:         "GPT-4o",
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o",
		Description:  "Most capable OpenAI model (direct)",
		Capabilities: Capabilities{Streaming: true, Tools: true, Reasoning: true},
	},
}

var openRouterModels = []ModelInfo{
	{
		ID:           "openrouter-gpt-4o-mini",
		Name:         "GPT-4o Mini",
		Provider:     ProviderOpenRouter,
		Model:        "openai/gpt-4o-mini",
		Description:  "Fast, low-cost OpenAI model",
		Capabilities: Capabilities{Streaming: true, Tools: true},
	},
	{
		ID:           "openrouter-gpt-oss",
		Name:         "GPT OSS 120B",
		Provider:     ProviderOpenRouter,
		Model:        "openai/gpt-oss-120b:free",
		Description:  "Complex reasoning specialist",
		Capabilities: Capabilities{Thinking: true, Streaming: true, Tools: true, Reasoning: true},
	},
	{
		ID:           "openrouter-devstral",
		Name:         "Devstral 2512",
		Provider:     ProviderOpenRouter,
		Model:        "mistralai/devstral-2512:free",
		Description:  "Strong agent model",
		Capabilities: Capabilities{Streaming: true, Tools: true, Agents: true},
	},
	{
		ID:           "openrouter-devstral-2",
		Name:         "Devstral 2 2512",
		Provider:     ProviderOpenRouter,
		Model:        "mistralai/devstral-2512:free",
		Description:  "Agentic coding specialist, 123B parameters, 256K context",
		Capabilities: Capabilities{Streaming: true, Tools: true, Agents: true, Coding: true},
	},
	{
		ID:           "openrouter-qwen3-4b",
		Name:         "Qwen3 4B",
		Provider:     ProviderOpenRouter,
		Model:        "qwen/qwen3-4b:free",
		Description:  "4B dual-mode (thinking/non-thinking) model for logic and chat",
		Capabilities: Capabilities{Thinking: true, Streaming: true, Tools: true, Reasoning: true, Agents: true},
	},
	{
		ID:           "openrouter-qwen3-coder",
		Name:         "Qwen3 Coder 480B A35B",
		Provider:     ProviderOpenRouter,
		Model:        "qwen/qwen3-coder:free",
		Description:  "480B MoE model tuned for agentic coding and long context",
		Capabilities: Capabilities{Streaming: true, Tools: true, Coding: true, Agents: true, Reasoning: true},
	},
	{
		ID:           "openrouter-nemotron",
		Name:         "Nemotron 3 Nano 30B",
		Provider:     ProviderOpenRouter,
		Model:        "nvidia/nemotron-3-nano-30b-a3b:free",
		Description:  "Reasoning specialist",
		Capabilities: Capabilities{Streaming: true, Tools: true, Reasoning: true},
	},
	{
		ID:           "openrouter-kat-coder",
		Name:         "KAT Coder Pro",
		Provider:     ProviderOpenRouter,
		Model:        "kwaipilot/kat-coder-pro:free",
		Description:  "Coding specialist",
		Capabilities: Capabilities{Thinking: true, Streaming: true, Tools: true, Coding: true},
	},
}

var geminiModels = []ModelInfo{
	{
		ID:           "gemini-robotics-er-1.5-preview",
		Name:         "Gemini Robotics ER 1.5 Preview",
		Provider:     ProviderGemini,
		Model:        "gemini-robotics-er-1.5-preview",
		Description:  "Gemini model specialised for robotics, preview",
		Capabilities: Capabilities{Streaming: true, Tools: true, Reasoning: true},
	},
	{
		ID:           "gemini-2.5-flash",
		Name:         "Gemini 2.5 Flash",
		Provider:     ProviderGemini,
		Model:        "gemini-2.5-flash",
		Description:  "Fast, stable Gemini 2.5 model",
		Capabilities: Capabilities{Streaming: true, Tools: true},
	},
	{
		ID:           "gemini-2.5-flash-lite",
		Name:         "Gemini 2.5 Flash Lite",
		Provider:     ProviderGemini,
		Model:        "gemini-2.5-flash-lite",
		Description:  "Light Gemini 2.5 Flash for quick tasks",
		Capabilities: Capabilities{Streaming: true, Tools: true},
	},
}

var localModels = []ModelInfo{
	{
		ID:           "lmstudio-qwen3-4b",
		Name:         "Qwen 3 4B (thinking)",
		Provider:     ProviderLMStudio,
		Model:        "qwen/qwen3-4b",
		Description:  "Local model with reasoning",
		Capabilities: Capabilities{Thinking: true, Streaming: true, Tools: true},
	},
	{
		ID:           "lmstudio-qwen3-1.7b",
		Name:         "Qwen 3 1.7B (thinking)",
		Provider:     ProviderLMStudio,
		Model:        "qwen/qwen3-1.7b",
		Description:  "Lightweight local model",
		Capabilities: Capabilities{Thinking: true, Streaming: true, Tools: true},
	},
}

var providers = []ProviderInfo{
	{ID: ProviderOpenAI, Name: "OpenAI (Direct)", Description: "Direct OpenAI API, cheapest, no commission"},
	{ID: ProviderOpenRouter, Name: "OpenRouter", Description: "OpenAI, Mistral, NVIDIA and more (+commission)"},
	{ID: ProviderGemini, Name: "Google Gemini", Description: "Google models"},
	{ID: ProviderLMStudio, Name: "LM Studio (Local)", Description: "Models running on your machine"},
}

// ForProvider returns the models of p in declaration order. Unknown
// providers get an empty slice. The result is a copy.
func ForProvider(p Provider) []ModelInfo {
	var src []ModelInfo
	switch p {
	case ProviderOpenAI:
		src = openAIModels
	case ProviderOpenRouter:
		src = openRouterModels
	case ProviderGemini:
		src = geminiModels
	case ProviderLMStudio:
		src = localModels
	default:
		return []ModelInfo{}
	}
	out := make([]ModelInfo, len(src))
	copy(out, src)
	return out
}

// All returns every model, grouped by provider in display order
func All() []ModelInfo {
	var all []ModelInfo
	for _, p := range providers {
		all = append(all, ForProvider(p.ID)...)
	}
	return all
}

// ByID returns a model by its catalog ID
func ByID(id string) (ModelInfo, bool) {
	for _, m := range All() {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// Default is the first direct OpenAI model.
func Default() ModelInfo {
	return openAIModels[0]
}

// Providers returns all providers in display order
func Providers() []ProviderInfo {
	out := make([]ProviderInfo, len(providers))
	copy(out, providers)
	return out
}

// ProviderByID returns display information for p
func ProviderByID(p Provider) (ProviderInfo, bool) {
	for _, info := range providers {
		if info.ID == p {
			return info, true
		}
	}
	return ProviderInfo{}, false
}

// FirstConfig is what a provider change selects: the provider's first model.
// ok is false for a provider without models.
func FirstConfig(p Provider) (LLMConfig, ModelInfo, bool) {
	list := ForProvider(p)
	if len(list) == 0 {
		return LLMConfig{}, ModelInfo{}, false
	}
	return LLMConfig{Provider: p, Model: list[0].Model}, list[0], true
}

// Search filters the models of p by a case-insensitive substring of the
// name, model identifier or description.
func Search(p Provider, query string) []ModelInfo {
	list := ForProvider(p)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}

	result := make([]ModelInfo, 0, len(list))
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.Name), query) ||
			strings.Contains(strings.ToLower(m.Model), query) ||
			strings.Contains(strings.ToLower(m.Description), query) {
			result = append(result, m)
		}
	}
	return result
}
