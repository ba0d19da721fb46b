package cognito

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"

	"github.com/marmos91/pamcognito/pkg/config"
)

// Client is the subset of the Cognito Identity Provider API used by the
// Verifier. *cognitoidentityprovider.Client implements it.
type Client interface {
	AdminInitiateAuth(ctx context.Context, in *cip.AdminInitiateAuthInput, optFns ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	AdminRespondToAuthChallenge(ctx context.Context, in *cip.AdminRespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.AdminRespondToAuthChallengeOutput, error)
	RespondToAuthChallenge(ctx context.Context, in *cip.RespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
}

// ClientFactory builds a Client for one attempt.
type ClientFactory func(ctx context.Context, cfg *config.Config) (Client, error)

// ec2MetadataHost is the EC2 instance metadata service, never proxied.
const ec2MetadataHost = "169.254.169.254"

// retryMaxAttempts keeps SDK retries inside the attempt timeout.
const retryMaxAttempts = 2

// NewClient builds a Cognito client from the module configuration alone.
//
// No environment variable and no shared config file is consulted: inside
// su or sudo they belong to the calling user, who could otherwise point
// the module at an endpoint of their choosing. Credentials are the static
// keys from the configuration or, without them, the EC2 instance role.
func NewClient(_ context.Context, cfg *config.Config) (Client, error) {
	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg := aws.Config{
		Region:           cfg.Region,
		HTTPClient:       httpClient,
		RetryMaxAttempts: retryMaxAttempts,
	}

	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = staticCredentials(cfg)
	} else {
		metadata := imds.New(imds.Options{HTTPClient: httpClient})
		awsCfg.Credentials = aws.NewCredentialsCache(ec2rolecreds.New(func(o *ec2rolecreds.Options) {
			o.Client = metadata
		}))
	}

	return cip.NewFromConfig(awsCfg, endpointOption(cfg)), nil
}

// NewEnvironmentClient builds a Cognito client with the SDK default
// configuration chain (environment, shared config, IMDS) under the module
// configuration. Used by the operator CLI, never inside the PAM module.
func NewEnvironmentClient(ctx context.Context, cfg *config.Config) (Client, error) {
	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithRetryMaxAttempts(retryMaxAttempts),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(staticCredentials(cfg)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cip.NewFromConfig(awsCfg, endpointOption(cfg)), nil
}

func staticCredentials(cfg *config.Config) aws.CredentialsProvider {
	return credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
}

func endpointOption(cfg *config.Config) func(*cip.Options) {
	return func(o *cip.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}
}

// newHTTPClient returns an HTTP client bounded by the attempt timeout that
// uses the configured proxy only, never the proxy environment variables.
func newHTTPClient(cfg *config.Config) (*awshttp.BuildableClient, error) {
	proxy, err := proxyFunc(cfg.HTTPSProxy)
	if err != nil {
		return nil, err
	}

	return awshttp.NewBuildableClient().
		WithTimeout(cfg.Timeout).
		WithTransportOptions(func(tr *http.Transport) {
			tr.Proxy = proxy
		}), nil
}

// proxyFunc returns the transport proxy function for proxyURL. The EC2
// instance metadata service is always reached directly.
func proxyFunc(proxyURL string) (func(*http.Request) (*url.URL, error), error) {
	if proxyURL == "" {
		return func(*http.Request) (*url.URL, error) { return nil, nil }, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse https-proxy: %w", err)
	}

	return func(r *http.Request) (*url.URL, error) {
		if r.URL.Hostname() == ec2MetadataHost {
			return nil, nil
		}
		return u, nil
	}, nil
}
