package cognito

import (
	"context"
	"net/http"
	"testing"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyFunc(t *testing.T) {
	proxy, err := proxyFunc("http://proxy.internal:3128")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "https://cognito-idp.us-east-1.amazonaws.com/", nil)
	u, err := proxy(req)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "proxy.internal:3128", u.Host)

	imdsReq, _ := http.NewRequest(http.MethodGet, "http://169.254.169.254/latest/api/token", nil)
	u, err = proxy(imdsReq)
	require.NoError(t, err)
	assert.Nil(t, u, "instance metadata must bypass the proxy")
}

func TestProxyFunc_IgnoresEnvironment(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://attacker.example:8080")
	t.Setenv("HTTP_PROXY", "http://attacker.example:8080")

	proxy, err := proxyFunc("")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "https://cognito-idp.us-east-1.amazonaws.com/", nil)
	u, err := proxy(req)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestProxyFunc_Invalid(t *testing.T) {
	_, err := proxyFunc("http://[::1")
	assert.Error(t, err)
}

func TestNewClient_UsesModuleConfiguration(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT_URL", "https://attacker.example")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAENV")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")

	cfg := mustConfig(t,
		"endpoint=https://cognito.vpce.internal",
		"aws-access-key-id=AKIACONF",
		"aws-secret-access-key=conf-secret",
	)

	c, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)

	client, ok := c.(*cip.Client)
	require.True(t, ok)
	opts := client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "https://cognito.vpce.internal", *opts.BaseEndpoint)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIACONF", creds.AccessKeyID)
}

func TestNewClient_InstanceRoleByDefault(t *testing.T) {
	c, err := NewClient(context.Background(), mustConfig(t))
	require.NoError(t, err)

	client, ok := c.(*cip.Client)
	require.True(t, ok)
	assert.NotNil(t, client.Options().Credentials)
	assert.Nil(t, client.Options().BaseEndpoint)
}
