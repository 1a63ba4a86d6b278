package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForProvider_DeterministicAndFiltered(t *testing.T) {
	for _, p := range Providers() {
		first := ForProvider(p.ID)
		second := ForProvider(p.ID)

		require.NotEmpty(t, first, "provider %s has no models", p.ID)
		assert.Equal(t, first, second, "provider %s returned different sequences", p.ID)
		for _, m := range first {
			assert.Equal(t, p.ID, m.Provider, "model %s listed under %s", m.ID, p.ID)
		}
	}
}

func TestForProvider_Counts(t *testing.T) {
	tests := []struct {
		provider Provider
		want     int
	}{
		{ProviderOpenAI, 2},
		{ProviderOpenRouter, 8},
		{ProviderGemini, 3},
		{ProviderLMStudio, 2},
		{Provider("anthropic"), 0},
	}

	for _, tt := range tests {
		got := ForProvider(tt.provider)
		assert.NotNil(t, got)
		assert.Len(t, got, tt.want, "provider %s", tt.provider)
	}
}

func TestForProvider_ReturnsCopy(t *testing.T) {
	list := ForProvider(ProviderOpenAI)
	list[0].Name = "mutated"

	assert.Equal(t, "GPT-4o Mini", ForProvider(ProviderOpenAI)[0].Name)
}

func TestByID(t *testing.T) {
	m, ok := ByID("gemini-2.5-flash")
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, m.Provider)
	assert.Equal(t, "gemini-2.5-flash", m.Model)

	_, ok = ByID("does-not-exist")
	assert.False(t, ok)
}

func TestIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range All() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
	assert.Len(t, seen, 15)
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "openai-gpt-4o-mini", d.ID)
	assert.Equal(t, LLMConfig{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}, d.Config())
}

func TestFirstConfig(t *testing.T) {
	cfg, m, ok := FirstConfig(ProviderGemini)
	require.True(t, ok)
	assert.Equal(t, "gemini-robotics-er-1.5-preview", m.ID)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, m.Model, cfg.Model)

	_, _, ok = FirstConfig(Provider("nope"))
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		query    string
		wantIDs  []string
	}{
		{"empty query", ProviderLMStudio, "", []string{"lmstudio-qwen3-4b", "lmstudio-qwen3-1.7b"}},
		{"by name case-insensitive", ProviderOpenRouter, "QWEN3", []string{"openrouter-qwen3-4b", "openrouter-qwen3-coder"}},
		{"by model identifier", ProviderOpenRouter, "nvidia/", []string{"openrouter-nemotron"}},
		{"by description", ProviderGemini, "robotics", []string{"gemini-robotics-er-1.5-preview"}},
		{"no match", ProviderOpenAI, "llama", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.provider, tt.query)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCapabilityTags(t *testing.T) {
	m, ok := ByID("openrouter-qwen3-coder")
	require.True(t, ok)
	assert.Equal(t, []string{"reasoning", "coding", "agents"}, m.Capabilities.Tags())

	assert.Empty(t, Capabilities{Streaming: true}.Tags())
}
