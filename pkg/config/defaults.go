package config

import (
	"strings"
	"time"
)

// Default values for optional options.
const (
	DefaultAuthFlow = FlowAdmin
	DefaultTimeout  = 10 * time.Second
	DefaultPrompt   = "Password: "

	// MaxTimeout bounds the timeout option; login prompts must not hang.
	MaxTimeout = 2 * time.Minute
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false) are replaced with defaults
//   - Explicit values are preserved
//   - Required options (region, pool-id, client-id) never get a default
func ApplyDefaults(cfg *Config) {
	applyFlowDefaults(cfg)
	applyConversationDefaults(cfg)
}

// applyFlowDefaults sets the verification flow and its time bound.
func applyFlowDefaults(cfg *Config) {
	if cfg.AuthFlow == "" {
		cfg.AuthFlow = DefaultAuthFlow
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.Region = strings.TrimSpace(cfg.Region)
	cfg.Domain = strings.ToLower(strings.TrimSpace(cfg.Domain))
}

// applyConversationDefaults sets prompting defaults.
func applyConversationDefaults(cfg *Config) {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
}
