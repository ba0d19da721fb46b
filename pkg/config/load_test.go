package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	// WriteFile is subject to umask; force the mode under test.
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestLoad_WithoutFileMatchesParse(t *testing.T) {
	t.Parallel()

	loaded, err := Load(minimalArgs)
	require.NoError(t, err)
	parsed, err := Parse(minimalArgs)
	require.NoError(t, err)

	assert.Equal(t, parsed, loaded)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito.yaml", `
region: us-east-1
pool-id: us-east-1_Pool
client-id: client-from-file
timeout: 4s
challenge: true
`, 0o600)

	cfg, err := Load([]string{"config=" + path})
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "us-east-1_Pool", cfg.PoolID)
	assert.Equal(t, "client-from-file", cfg.ClientID)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.True(t, cfg.Challenge)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_ArgumentsOverrideFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito.yaml", `
region: us-east-1
pool-id: us-east-1_Pool
client-id: client-from-file
`, 0o600)

	cfg, err := Load([]string{"config=" + path, "client-id=client-from-args", "timeout=2s"})
	require.NoError(t, err)

	assert.Equal(t, "client-from-args", cfg.ClientID)
	assert.Equal(t, "us-east-1_Pool", cfg.PoolID)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoad_LegacyConfFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito_auth.conf", `# managed by bootstrap
aws_region = eu-west-1
user_pool_id = eu-west-1_Legacy
client_id = legacy-client
`, 0o600)

	cfg, err := Load([]string{"config=" + path})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "eu-west-1_Legacy", cfg.PoolID)
	assert.Equal(t, "legacy-client", cfg.ClientID)
}

func TestLoad_FileNumericTimeoutIsSeconds(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito.yaml", `
region: us-east-1
pool-id: p1
client-id: c1
timeout: 7
`, 0o600)

	cfg, err := Load([]string{"config=" + path})
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestLoad_WritableFileRejected(t *testing.T) {
	t.Parallel()

	for _, mode := range []os.FileMode{0o620, 0o602, 0o666} {
		path := writeConfig(t, "cognito.yaml", "region: us-east-1\n", mode)

		_, err := Load(append(minimalArgs, "config="+path))
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr, "mode %o", mode)
		assert.Equal(t, KeyConfigFile, cerr.Option)
		assert.Contains(t, cerr.Reason, "writable")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(append(minimalArgs, "config="+filepath.Join(t.TempDir(), "missing.yaml")))
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KeyConfigFile, cerr.Option)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedFileValue(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito.yaml", `
region: us-east-1
pool-id: p1
client-id: c1
use-first-pass: sometimes
`, 0o600)

	_, err := Load([]string{"config=" + path})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KeyUseFirstPass, cerr.Option)
}

func TestLoad_FileMissingRequired(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cognito.yaml", "region: us-east-1\n", 0o600)

	_, err := Load([]string{"config=" + path})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KeyPoolID, cerr.Option)
}

func TestLoad_IgnoresEnvironment(t *testing.T) {
	t.Setenv("REGION", "us-east-1")
	t.Setenv("POOL_ID", "p1")
	t.Setenv("CLIENT_ID", "c1")
	t.Setenv("AWS_REGION", "us-east-1")

	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
