package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/pamcognito/internal/cli/prompt"
	"github.com/marmos91/pamcognito/pkg/auth"
	"github.com/marmos91/pamcognito/pkg/config"
	"github.com/marmos91/pamcognito/pkg/conversation"
)

var moduleArgs = []string{"region=us-east-1", "pool-id=p1", "client-id=c1"}

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	outputFormat, noColor, logLevel = "table", false, "ERROR"
	verifyUser, verifyService, verifySilent = "", "", false
	schemaOutput, versionShort = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

type stubVerifier struct{}

func (stubVerifier) Name() string { return "stub" }

func (stubVerifier) Verify(_ context.Context, req *auth.Request) (*auth.Outcome, error) {
	if req.Credentials.Secret.Reveal() == "correct-pw" {
		return auth.Succeeded(req.Credentials.Username), nil
	}
	return auth.Rejected(auth.OutcomeInvalidCredentials), nil
}

func (stubVerifier) Respond(context.Context, *auth.ChallengeRequest) (*auth.Outcome, error) {
	return nil, errors.New("unexpected")
}

func withStubs(t *testing.T, password string) {
	t.Helper()
	prevVerifier, prevTx := newVerifier, newTransaction
	t.Cleanup(func() { newVerifier, newTransaction = prevVerifier, prevTx })

	newVerifier = func() auth.Verifier { return stubVerifier{} }
	newTransaction = func(cmd *cobra.Command) conversation.Transaction {
		return &prompt.Transaction{
			Username: verifyUser,
			Out:      cmd.ErrOrStderr(),
			Secret:   func(string) (string, error) { return password, nil },
		}
	}
}

func TestVerify_Success(t *testing.T) {
	withStubs(t, "correct-pw")

	out, err := execute(t, append([]string{"verify", "--user", "alice"}, moduleArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "PAM_SUCCESS")
}

func TestVerify_WrongPassword(t *testing.T) {
	withStubs(t, "wrong-pw")

	out, err := execute(t, append([]string{"verify", "--user", "alice"}, moduleArgs...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAM_AUTH_ERR")
	assert.Contains(t, out, "PAM_AUTH_ERR")
}

func TestVerify_MissingArguments(t *testing.T) {
	withStubs(t, "correct-pw")

	out, err := execute(t, "verify", "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, out, "PAM_SERVICE_ERR")
}

func TestArgs_Table(t *testing.T) {
	out, err := execute(t, append([]string{"args", "client-secret=topsecret", "timeout=5"}, moduleArgs...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "OPTION")
	assert.Contains(t, out, "us-east-1")
	assert.Contains(t, out, "5s")
	assert.Contains(t, out, config.RedactedValue)
	assert.NotContains(t, out, "topsecret")
}

func TestArgs_JSON(t *testing.T) {
	out, err := execute(t, append([]string{"args", "-o", "json", "client-secret=topsecret"}, moduleArgs...)...)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "p1", got["pool-id"])
	assert.Equal(t, "admin", got["auth-flow"])
	assert.Equal(t, config.RedactedValue, got["client-secret"])
}

func TestArgs_Invalid(t *testing.T) {
	_, err := execute(t, "args", "pool-id=p1")

	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, config.KeyRegion, cerr.Option)
}

func TestArgs_BadOutputFormat(t *testing.T) {
	_, err := execute(t, append([]string{"args", "-o", "xml"}, moduleArgs...)...)
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "pam_cognito Configuration", schema["title"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "pool-id")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}
