package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// AuthFlow selects the Cognito API used to verify a password.
type AuthFlow string

const (
	// FlowAdmin uses AdminInitiateAuth with ADMIN_USER_PASSWORD_AUTH.
	// Requires IAM credentials allowed to call the admin API on the pool.
	FlowAdmin AuthFlow = "admin"

	// FlowUserPassword uses the public InitiateAuth with USER_PASSWORD_AUTH.
	// Requires the app client to allow that flow; no IAM credentials needed.
	FlowUserPassword AuthFlow = "user-password"
)

// Config is the configuration record of one module invocation.
//
// It is built from the module arguments of the PAM stack line, optionally
// layered over a configuration file named by the "config" argument:
//
//	auth sufficient pam_cognito.so region=us-east-1 pool-id=us-east-1_Ab client-id=c1
//
// Configuration sources (in order of precedence):
//  1. Module arguments (highest priority)
//  2. Configuration file (YAML, TOML, JSON or key = value)
//  3. Default values (lowest priority)
//
// Environment variables are never consulted: the module runs inside setuid
// programs (su, sudo) whose environment belongs to the calling user.
type Config struct {
	// Region is the AWS region of the user pool.
	Region string `mapstructure:"region" validate:"required" yaml:"region" json:"region"`

	// PoolID is the Cognito user pool identifier, e.g. us-east-1_AbCdEf.
	PoolID string `mapstructure:"pool-id" validate:"required" yaml:"pool-id" json:"pool-id"`

	// ClientID is the user pool app client identifier.
	ClientID string `mapstructure:"client-id" validate:"required" yaml:"client-id" json:"client-id"`

	// ClientSecret is the app client secret. When set, every call carries
	// a SECRET_HASH derived from it.
	ClientSecret string `mapstructure:"client-secret" yaml:"client-secret,omitempty" json:"client-secret,omitempty"`

	// AuthFlow selects admin or user-password verification.
	// Default: admin
	AuthFlow AuthFlow `mapstructure:"auth-flow" validate:"required,oneof=admin user-password" yaml:"auth-flow,omitempty" json:"auth-flow,omitempty" jsonschema:"enum=admin,enum=user-password"`

	// Timeout bounds the whole verification, challenge rounds included.
	// Default: 10s
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0,max=2m" yaml:"timeout,omitempty" json:"timeout,omitempty" jsonschema:"oneof_type=string;integer"`

	// Endpoint overrides the Cognito endpoint (VPC endpoint, emulator).
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url" yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// HTTPSProxy routes Cognito calls through a proxy. The EC2 instance
	// metadata service is never proxied.
	HTTPSProxy string `mapstructure:"https-proxy" validate:"omitempty,url" yaml:"https-proxy,omitempty" json:"https-proxy,omitempty"`

	// AccessKeyID and SecretAccessKey are static IAM credentials. Without
	// them the EC2 instance role is used.
	AccessKeyID     string `mapstructure:"aws-access-key-id" validate:"required_with=SecretAccessKey" yaml:"aws-access-key-id,omitempty" json:"aws-access-key-id,omitempty"`
	SecretAccessKey string `mapstructure:"aws-secret-access-key" validate:"required_with=AccessKeyID" yaml:"aws-secret-access-key,omitempty" json:"aws-secret-access-key,omitempty"`
	SessionToken    string `mapstructure:"aws-session-token" validate:"excluded_without=AccessKeyID" yaml:"aws-session-token,omitempty" json:"aws-session-token,omitempty"`

	// Domain qualifies bare usernames as user@domain.
	Domain string `mapstructure:"domain" validate:"omitempty,hostname_rfc1123" yaml:"domain,omitempty" json:"domain,omitempty"`

	// Challenge declares that the module may answer code challenges
	// (SMS, TOTP, e-mail OTP) through the conversation.
	Challenge bool `mapstructure:"challenge" yaml:"challenge,omitempty" json:"challenge,omitempty"`

	// UseFirstPass restricts the module to a password already present in
	// the transaction; it never prompts.
	UseFirstPass bool `mapstructure:"use-first-pass" yaml:"use-first-pass,omitempty" json:"use-first-pass,omitempty"`

	// TryFirstPass uses a password already present in the transaction and
	// prompts otherwise. This is the default behaviour.
	TryFirstPass bool `mapstructure:"try-first-pass" yaml:"try-first-pass,omitempty" json:"try-first-pass,omitempty"`

	// Prompt is the password prompt text.
	// Default: "Password: "
	Prompt string `mapstructure:"prompt" yaml:"prompt,omitempty" json:"prompt,omitempty"`

	// File is the configuration file the record was layered over, if any.
	File string `mapstructure:"config" yaml:"-" json:"-"`
}

// Parse builds a validated Config from module arguments alone.
//
// Parse is pure: it reads no files and no environment. An empty argument
// vector always fails because the required options are missing.
func Parse(args []string) (*Config, error) {
	values, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return build(values)
}

// Load builds a validated Config from module arguments, first reading the
// configuration file named by the "config" argument when present.
// Arguments override file values.
func Load(args []string) (*Config, error) {
	argValues, err := parseArgs(args)
	if err != nil {
		return nil, err
	}

	path, _ := argValues[KeyConfigFile].(string)
	if path == "" {
		return build(argValues)
	}

	values, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	for k, v := range argValues {
		values[k] = v
	}
	return build(values)
}

// Qualify returns the name sent to the identity provider for username.
// With a Domain configured, bare names become user@domain.
func (c *Config) Qualify(username string) string {
	if c.Domain == "" || strings.Contains(username, "@") {
		return username
	}
	return username + "@" + c.Domain
}

// build decodes collected option values into a Config, applies defaults
// and validates the result.
func build(values map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       configDecodeHooks(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, &ConfigError{Option: "arguments", Reason: "cannot be decoded", Err: err}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readConfigFile reads a configuration file with viper and returns its
// known options, type-checked, under their canonical keys.
func readConfigFile(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ConfigError{Option: KeyConfigFile, Reason: "cannot be read", Err: err}
	}
	if info.Mode().Perm()&0o022 != 0 {
		return nil, &ConfigError{Option: KeyConfigFile, Reason: "must not be group- or world-writable"}
	}

	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".conf", ".cfg", "":
		// key = value per line, e.g. /etc/cognito_auth.conf:
		//	aws_region = us-east-1
		//	user_pool_id = us-east-1_AbCdEf
		v.SetConfigType("dotenv")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Option: KeyConfigFile, Reason: "cannot be parsed", Err: err}
	}

	values := make(map[string]any)
	for _, k := range v.AllKeys() {
		key, opt, ok := lookupOption(k)
		if !ok || key == KeyConfigFile {
			continue
		}
		raw := v.Get(k)
		if err := checkValue(key, opt, raw); err != nil {
			return nil, err
		}
		values[key] = raw
	}
	return values, nil
}

// configDecodeHooks returns the decode hooks applied to option values.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		authFlowDecodeHook(),
	)
}

// durationDecodeHook returns a mapstructure decode hook that converts strings
// to time.Duration. Plain numbers (from YAML or TOML files) are seconds.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return parseDuration(v)
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

// authFlowDecodeHook normalizes auth-flow spellings ("user_password",
// "ADMIN") before validation.
func authFlowDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(AuthFlow("")) {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return AuthFlow(normalizeKey(s)), nil
		}
		return data, nil
	}
}
