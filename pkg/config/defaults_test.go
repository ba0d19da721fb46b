package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_Empty(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, FlowAdmin, cfg.AuthFlow)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "Password: ", cfg.Prompt)

	// Required options never get a default.
	assert.Empty(t, cfg.Region)
	assert.Empty(t, cfg.PoolID)
	assert.Empty(t, cfg.ClientID)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		AuthFlow: FlowUserPassword,
		Timeout:  3 * time.Second,
		Prompt:   "Cognito password: ",
	}
	ApplyDefaults(cfg)

	assert.Equal(t, FlowUserPassword, cfg.AuthFlow)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "Cognito password: ", cfg.Prompt)
}

func TestApplyDefaults_Normalizes(t *testing.T) {
	cfg := &Config{Region: " us-east-1 ", Domain: " Corp.Example.COM"}
	ApplyDefaults(cfg)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "corp.example.com", cfg.Domain)
}

func TestValidate_DefaultedConfig(t *testing.T) {
	cfg := &Config{Region: "us-east-1", PoolID: "p1", ClientID: "c1"}
	ApplyDefaults(cfg)

	assert.NoError(t, Validate(cfg))
}

func TestValidate_ZeroTimeoutWithoutDefaults(t *testing.T) {
	cfg := &Config{Region: "us-east-1", PoolID: "p1", ClientID: "c1", AuthFlow: FlowAdmin}

	err := Validate(cfg)
	var cerr *ConfigError
	if assert.ErrorAs(t, err, &cerr) {
		assert.Equal(t, KeyTimeout, cerr.Option)
	}
}
