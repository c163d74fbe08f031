package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_key: env:TEST_OPENAI_KEY
system_message: "You are terse."
max_messages: 20
completion_params:
  model: gpt-4
  temperature: 0.3
  stop:
    - "END"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env:TEST_OPENAI_KEY", cfg.APIKey)
	assert.Equal(t, "You are terse.", cfg.SystemMessage)
	assert.Equal(t, 20, cfg.MaxMessages)
	assert.Equal(t, "gpt-4", cfg.CompletionParams.Model)
	require.NotNil(t, cfg.CompletionParams.Temperature)
	assert.InDelta(t, 0.3, *cfg.CompletionParams.Temperature, 1e-9)
	assert.Equal(t, []string{"END"}, cfg.CompletionParams.Stop)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")

	assert.Equal(t, "sk-from-env", resolveAPIKey("env:TEST_OPENAI_KEY"))
	assert.Equal(t, "sk-direct", resolveAPIKey("sk-direct"))
}

func TestCompletionParamsMerge(t *testing.T) {
	base := CompletionParams{
		Model:           DefaultModel,
		Temperature:     float64Ptr(0.8),
		TopP:            float64Ptr(1.0),
		PresencePenalty: float64Ptr(1.0),
	}

	t.Run("nil override keeps base", func(t *testing.T) {
		assert.Equal(t, base, base.merge(nil))
	})

	t.Run("override wins per field", func(t *testing.T) {
		zero := 0.0
		merged := base.merge(&CompletionParams{
			Model:       "gpt-4",
			Temperature: &zero,
			Stop:        []string{"###"},
		})

		assert.Equal(t, "gpt-4", merged.Model)
		// Explicit zero is an override, not "unset".
		assert.InDelta(t, 0.0, *merged.Temperature, 1e-9)
		assert.Equal(t, []string{"###"}, merged.Stop)
		// Untouched fields fall back to the base values.
		assert.InDelta(t, 1.0, *merged.TopP, 1e-9)
		assert.InDelta(t, 1.0, *merged.PresencePenalty, 1e-9)
	})
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "k"}.withDefaults()

	assert.Equal(t, DefaultSystemMessage, cfg.SystemMessage)
	assert.Equal(t, DefaultMaxMessages, cfg.MaxMessages)
	assert.Equal(t, DefaultModel, cfg.CompletionParams.Model)
	require.NotNil(t, cfg.CompletionParams.Temperature)
	assert.InDelta(t, 0.8, *cfg.CompletionParams.Temperature, 1e-9)

	// Explicit values survive.
	custom := Config{APIKey: "k", MaxMessages: 5, SystemMessage: "short"}.withDefaults()
	assert.Equal(t, 5, custom.MaxMessages)
	assert.Equal(t, "short", custom.SystemMessage)
}
