package ai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied by NewService when the corresponding Config field is
// left unset. APIKey is the only field without a default.
const (
	DefaultModel         = "gpt-3.5-turbo"
	DefaultSystemMessage = "You are a helpful assistant."
	DefaultMaxMessages   = 100
)

const (
	defaultTemperature     = 0.8
	defaultTopP            = 1.0
	defaultPresencePenalty = 1.0
)

// CompletionParams enumerates every completion parameter the service
// forwards to the endpoint. Numeric fields are pointers so an explicit zero
// override is distinguishable from "not set".
type CompletionParams struct {
	Model            string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP             *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" yaml:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
	MaxTokens        *int64   `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Stop             []string `json:"stop,omitempty" yaml:"stop,omitempty"`
}

// merge layers a per-call override on top of the receiver. The rule is
// per-field: an override field wins when it is set (non-nil pointer,
// non-empty string or slice), otherwise the instance value applies.
func (p CompletionParams) merge(override *CompletionParams) CompletionParams {
	if override == nil {
		return p
	}
	merged := p
	if override.Model != "" {
		merged.Model = override.Model
	}
	if override.Temperature != nil {
		merged.Temperature = override.Temperature
	}
	if override.TopP != nil {
		merged.TopP = override.TopP
	}
	if override.PresencePenalty != nil {
		merged.PresencePenalty = override.PresencePenalty
	}
	if override.FrequencyPenalty != nil {
		merged.FrequencyPenalty = override.FrequencyPenalty
	}
	if override.MaxTokens != nil {
		merged.MaxTokens = override.MaxTokens
	}
	if len(override.Stop) > 0 {
		merged.Stop = override.Stop
	}
	return merged
}

// Config holds the service configuration. APIKey is required; every other
// field falls back to a documented default.
type Config struct {
	APIKey           string           `json:"api_key" yaml:"api_key"`                                   // direct key or "env:VAR_NAME" reference
	BaseURL          string           `json:"base_url,omitempty" yaml:"base_url,omitempty"`             // optional OpenAI-compatible endpoint
	Debug            bool             `json:"debug,omitempty" yaml:"debug,omitempty"`                   // dump raw requests/responses to stderr
	SystemMessage    string           `json:"system_message,omitempty" yaml:"system_message,omitempty"` // default system prompt
	MaxMessages      int              `json:"max_messages,omitempty" yaml:"max_messages,omitempty"`     // cap on messages submitted per call
	CompletionParams CompletionParams `json:"completion_params,omitempty" yaml:"completion_params,omitempty"`
}

// LoadConfig reads and parses the configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// withDefaults returns a copy of the config with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.SystemMessage == "" {
		c.SystemMessage = DefaultSystemMessage
	}
	if c.MaxMessages <= 0 {
		c.MaxMessages = DefaultMaxMessages
	}
	if c.CompletionParams.Model == "" {
		c.CompletionParams.Model = DefaultModel
	}
	if c.CompletionParams.Temperature == nil {
		c.CompletionParams.Temperature = float64Ptr(defaultTemperature)
	}
	if c.CompletionParams.TopP == nil {
		c.CompletionParams.TopP = float64Ptr(defaultTopP)
	}
	if c.CompletionParams.PresencePenalty == nil {
		c.CompletionParams.PresencePenalty = float64Ptr(defaultPresencePenalty)
	}
	return c
}

// resolveAPIKey resolves an API key. Keys prefixed with "env:" are read from
// the named environment variable.
func resolveAPIKey(key string) string {
	if strings.HasPrefix(key, "env:") {
		return os.Getenv(strings.TrimPrefix(key, "env:"))
	}
	return key
}

func float64Ptr(v float64) *float64 { return &v }
