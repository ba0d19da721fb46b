package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedacted_MasksSecrets(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(append(minimalArgs,
		"client-secret=topsecret",
		"aws-access-key-id=AKIAEXAMPLE",
		"aws-secret-access-key=wJalrXUtnFEMI",
		"aws-session-token=FwoGZXIvYXdzE",
	))
	require.NoError(t, err)

	m := cfg.Redacted()
	assert.Equal(t, RedactedValue, m[KeyClientSecret])
	assert.Equal(t, RedactedValue, m[KeySecretAccessKey])
	assert.Equal(t, RedactedValue, m[KeySessionToken])
	assert.Equal(t, "AKIAEXAMPLE", m[KeyAccessKeyID])
	assert.Equal(t, "us-east-1", m[KeyRegion])
	assert.Equal(t, "10s", m[KeyTimeout])
	assert.Equal(t, "false", m[KeyChallenge])

	out, err := json.Marshal(m)
	require.NoError(t, err)
	for _, secret := range []string{"topsecret", "wJalrXUtnFEMI", "FwoGZXIvYXdzE"} {
		assert.NotContains(t, string(out), secret)
	}
}

func TestRedacted_EmptySecretStaysEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(minimalArgs)
	require.NoError(t, err)
	assert.Empty(t, cfg.Redacted()[KeyClientSecret])
}

func TestFields_DeclarationOrder(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(minimalArgs)
	require.NoError(t, err)

	fields := cfg.Fields()
	require.NotEmpty(t, fields)
	assert.Equal(t, KeyRegion, fields[0].Option)
	assert.Equal(t, KeyPoolID, fields[1].Option)
	assert.Equal(t, KeyClientID, fields[2].Option)
	assert.Equal(t, KeyConfigFile, fields[len(fields)-1].Option)
}

func TestIsSecret(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSecret("client-secret"))
	assert.True(t, IsSecret("AWS_SECRET_ACCESS_KEY"))
	assert.False(t, IsSecret("region"))
	assert.False(t, IsSecret("no-such-option"))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := Schema()
	require.NotNil(t, schema)
	assert.Equal(t, "pam_cognito Configuration", schema.Title)

	_, ok := schema.Properties.Get("pool-id")
	assert.True(t, ok)
	_, ok = schema.Properties.Get("config")
	assert.False(t, ok)
	assert.Contains(t, schema.Required, "region")
}
