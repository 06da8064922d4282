package config

import "fmt"

// Hard-coded completion client defaults, the last link in the
// override → environment → default fallback chain.
const (
	DefaultEndpoint         = "https://api.openai.com/v1"
	DefaultModel            = "gpt-4o-mini"
	DefaultTemperature      = 0.2
	DefaultTimeoutMS        = 30000
	DefaultMaxRetries       = 3
	DefaultRetryBaseDelayMS = 1000
	DefaultMaxTokens        = 16384
)

// ConfigError reports an invalid completion client setting. It is surfaced
// before any network call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid llm config: %s %s", e.Field, e.Reason)
}

// LLMOverrides carries caller-supplied settings for a single client.
// Nil or zero fields fall through to the environment-resolved value.
type LLMOverrides struct {
	Endpoint         string
	APIKey           string
	Model            string
	Temperature      *float64
	TimeoutMS        *int
	MaxRetries       *int
	RetryBaseDelayMS *int
	MaxTokens        *int
}

// ResolveLLM builds an immutable LLMConfig from the environment-resolved base
// with caller overrides applied on top, then validates numeric ranges.
// Fails with *ConfigError on any out-of-range value or a missing credential.
func ResolveLLM(base LLMConfig, overrides *LLMOverrides) (*LLMConfig, error) {
	cfg := base
	if overrides != nil {
		if overrides.Endpoint != "" {
			cfg.Endpoint = overrides.Endpoint
		}
		if overrides.APIKey != "" {
			cfg.APIKey = overrides.APIKey
		}
		if overrides.Model != "" {
			cfg.Model = overrides.Model
		}
		if overrides.Temperature != nil {
			cfg.Temperature = *overrides.Temperature
		}
		if overrides.TimeoutMS != nil {
			cfg.TimeoutMS = *overrides.TimeoutMS
		}
		if overrides.MaxRetries != nil {
			cfg.MaxRetries = *overrides.MaxRetries
		}
		if overrides.RetryBaseDelayMS != nil {
			cfg.RetryBaseDelayMS = *overrides.RetryBaseDelayMS
		}
		if overrides.MaxTokens != nil {
			cfg.MaxTokens = *overrides.MaxTokens
		}
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	if err := validateLLM(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateLLM(cfg *LLMConfig) error {
	if cfg.APIKey == "" {
		return &ConfigError{Field: "api_key", Reason: "is required"}
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return &ConfigError{Field: "temperature", Reason: "must be between 0 and 2"}
	}
	if cfg.TimeoutMS < 1000 {
		return &ConfigError{Field: "timeout_ms", Reason: "must be at least 1000"}
	}
	if cfg.MaxRetries < 0 || cfg.MaxRetries > 10 {
		return &ConfigError{Field: "max_retries", Reason: "must be between 0 and 10"}
	}
	if cfg.RetryBaseDelayMS < 100 {
		return &ConfigError{Field: "retry_base_delay_ms", Reason: "must be at least 100"}
	}
	return nil
}
