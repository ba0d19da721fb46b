package config

import (
	"strconv"
	"strings"
	"time"
)

// Option keys in their canonical spelling.
const (
	KeyRegion          = "region"
	KeyPoolID          = "pool-id"
	KeyClientID        = "client-id"
	KeyClientSecret    = "client-secret"
	KeyAuthFlow        = "auth-flow"
	KeyTimeout         = "timeout"
	KeyEndpoint        = "endpoint"
	KeyHTTPSProxy      = "https-proxy"
	KeyAccessKeyID     = "aws-access-key-id"
	KeySecretAccessKey = "aws-secret-access-key"
	KeySessionToken    = "aws-session-token"
	KeyDomain          = "domain"
	KeyChallenge       = "challenge"
	KeyUseFirstPass    = "use-first-pass"
	KeyTryFirstPass    = "try-first-pass"
	KeyPrompt          = "prompt"
	KeyConfigFile      = "config"
)

type optionKind int

const (
	kindString optionKind = iota
	kindBool
	kindDuration
)

type option struct {
	kind   optionKind
	secret bool
}

var options = map[string]option{
	KeyRegion:          {kind: kindString},
	KeyPoolID:          {kind: kindString},
	KeyClientID:        {kind: kindString},
	KeyClientSecret:    {kind: kindString, secret: true},
	KeyAuthFlow:        {kind: kindString},
	KeyTimeout:         {kind: kindDuration},
	KeyEndpoint:        {kind: kindString},
	KeyHTTPSProxy:      {kind: kindString},
	KeyAccessKeyID:     {kind: kindString},
	KeySecretAccessKey: {kind: kindString, secret: true},
	KeySessionToken:    {kind: kindString, secret: true},
	KeyDomain:          {kind: kindString},
	KeyChallenge:       {kind: kindBool},
	KeyUseFirstPass:    {kind: kindBool},
	KeyTryFirstPass:    {kind: kindBool},
	KeyPrompt:          {kind: kindString},
	KeyConfigFile:      {kind: kindString},
}

// aliases maps legacy option names (the cognito_auth.conf keys) to their
// canonical form. Names are already normalized.
var aliases = map[string]string{
	"aws-region":   KeyRegion,
	"user-pool-id": KeyPoolID,
	"proxy":        KeyHTTPSProxy,
}

// normalizeKey lowercases a key and treats '_' as '-'.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

// lookupOption resolves a raw key to its canonical name.
func lookupOption(raw string) (string, option, bool) {
	key := normalizeKey(raw)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	opt, ok := options[key]
	return key, opt, ok
}

// IsSecret reports whether the option holds secret material.
func IsSecret(key string) bool {
	_, opt, ok := lookupOption(key)
	return ok && opt.secret
}

// parseArgs splits module arguments into canonical key/value pairs.
//
// Entries are split at the first '='; a bare entry is a flag set to true.
// Unknown keys are skipped and later duplicates win. Values are checked
// against the option kind in argument order, so the first malformed entry
// is the one reported.
func parseArgs(args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			continue
		}

		rawKey, value, hasValue := strings.Cut(arg, "=")
		key, opt, ok := lookupOption(rawKey)
		if !ok {
			continue
		}

		if !hasValue {
			if opt.kind != kindBool {
				return nil, &ConfigError{Option: key, Reason: "requires a value"}
			}
			value = "true"
		}
		// Only string values keep surrounding blanks, e.g. "prompt=Code: ".
		if opt.kind != kindString {
			value = strings.TrimSpace(value)
		}

		if err := checkValue(key, opt, value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// checkValue verifies a raw value can be decoded as the option's kind.
func checkValue(key string, opt option, raw any) error {
	s, isString := raw.(string)

	switch opt.kind {
	case kindBool:
		if _, isBool := raw.(bool); isBool {
			return nil
		}
		if !isString {
			return &ConfigError{Option: key, Reason: "must be a boolean"}
		}
		if _, err := strconv.ParseBool(strings.TrimSpace(s)); err != nil {
			return &ConfigError{Option: key, Reason: "must be a boolean", Err: err}
		}

	case kindDuration:
		switch raw.(type) {
		case int, int64, float64:
			return nil
		}
		if !isString {
			return &ConfigError{Option: key, Reason: "must be a duration"}
		}
		if _, err := parseDuration(s); err != nil {
			return &ConfigError{Option: key, Reason: "must be a duration", Err: err}
		}

	case kindString:
		switch raw.(type) {
		case []any, map[string]any:
			return &ConfigError{Option: key, Reason: "must be a string"}
		}
	}
	return nil
}

// parseDuration accepts Go duration strings ("5s", "1m30s") and plain
// integers meaning seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
