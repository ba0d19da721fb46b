package cognito

import (
	"context"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/marmos91/pamcognito/internal/logger"
	"github.com/marmos91/pamcognito/pkg/auth"
	"github.com/marmos91/pamcognito/pkg/config"
)

// Parameter names of the Cognito auth and challenge APIs.
const (
	paramUsername     = "USERNAME"
	paramPassword     = "PASSWORD"
	paramSecretHash   = "SECRET_HASH"
	paramUserIDForSRP = "USER_ID_FOR_SRP"
	paramSMSCode      = "SMS_MFA_CODE"
	paramTOTPCode     = "SOFTWARE_TOKEN_MFA_CODE"
	paramEmailOTPCode = "EMAIL_OTP_CODE"
	verifierName      = "cognito"
)

// Verifier checks credentials against a Cognito user pool.
//
// A client is built for every call from the configuration of the attempt,
// so a Verifier holds no per-user state and is safe for concurrent use.
type Verifier struct {
	newClient ClientFactory
}

var _ auth.Verifier = (*Verifier)(nil)

// Option configures a Verifier.
type Option func(*Verifier)

// WithClientFactory replaces the client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(v *Verifier) { v.newClient = f }
}

// WithEnvironment makes the Verifier resolve AWS settings from the process
// environment and shared config files. Only for the operator CLI.
func WithEnvironment() Option {
	return WithClientFactory(NewEnvironmentClient)
}

// New creates a Verifier. By default clients come from NewClient.
func New(opts ...Option) *Verifier {
	v := &Verifier{newClient: NewClient}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name implements auth.Verifier.
func (v *Verifier) Name() string { return verifierName }

// Verify implements auth.Verifier.
func (v *Verifier) Verify(ctx context.Context, req *auth.Request) (*auth.Outcome, error) {
	cfg := req.Config
	client, err := v.newClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	username := req.Credentials.Username
	params := map[string]string{
		paramUsername: username,
		paramPassword: req.Credentials.Secret.Reveal(),
	}
	defer clear(params)
	if cfg.ClientSecret != "" {
		params[paramSecretHash] = SecretHash(cfg.ClientSecret, username, cfg.ClientID)
	}

	if cfg.AuthFlow == config.FlowUserPassword {
		out, err := client.InitiateAuth(ctx, &cip.InitiateAuthInput{
			AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
			ClientId:       aws.String(cfg.ClientID),
			AuthParameters: params,
		})
		if err != nil {
			return classify(ctx, "InitiateAuth", err)
		}
		return outcomeOf(ctx, out.AuthenticationResult, out.ChallengeName, out.ChallengeParameters, out.Session, username)
	}

	out, err := client.AdminInitiateAuth(ctx, &cip.AdminInitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeAdminUserPasswordAuth,
		UserPoolId:     aws.String(cfg.PoolID),
		ClientId:       aws.String(cfg.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		return classify(ctx, "AdminInitiateAuth", err)
	}
	return outcomeOf(ctx, out.AuthenticationResult, out.ChallengeName, out.ChallengeParameters, out.Session, username)
}

// Respond implements auth.Verifier for the code challenges.
func (v *Verifier) Respond(ctx context.Context, req *auth.ChallengeRequest) (*auth.Outcome, error) {
	codeParam, ok := codeParameter(req.Challenge.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChallenge, req.Challenge.Name)
	}

	cfg := req.Config
	client, err := v.newClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	// Cognito expects the internal user name it returned with the challenge.
	username := req.Username
	if id := req.Challenge.Detail[paramUserIDForSRP]; id != "" {
		username = id
	}

	responses := map[string]string{
		paramUsername: username,
		codeParam:     req.Answer.Reveal(),
	}
	defer clear(responses)
	if cfg.ClientSecret != "" {
		responses[paramSecretHash] = SecretHash(cfg.ClientSecret, username, cfg.ClientID)
	}

	name := types.ChallengeNameType(req.Challenge.Name)
	session := aws.String(req.Challenge.Session)

	if cfg.AuthFlow == config.FlowUserPassword {
		out, err := client.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
			ChallengeName:      name,
			ClientId:           aws.String(cfg.ClientID),
			ChallengeResponses: responses,
			Session:            session,
		})
		if err != nil {
			return classify(ctx, "RespondToAuthChallenge", err)
		}
		return outcomeOf(ctx, out.AuthenticationResult, out.ChallengeName, out.ChallengeParameters, out.Session, req.Username)
	}

	out, err := client.AdminRespondToAuthChallenge(ctx, &cip.AdminRespondToAuthChallengeInput{
		ChallengeName:      name,
		UserPoolId:         aws.String(cfg.PoolID),
		ClientId:           aws.String(cfg.ClientID),
		ChallengeResponses: responses,
		Session:            session,
	})
	if err != nil {
		return classify(ctx, "AdminRespondToAuthChallenge", err)
	}
	return outcomeOf(ctx, out.AuthenticationResult, out.ChallengeName, out.ChallengeParameters, out.Session, req.Username)
}

// codeParameter returns the challenge response key carrying the code.
func codeParameter(challenge string) (string, bool) {
	switch challenge {
	case auth.ChallengeSMSMFA:
		return paramSMSCode, true
	case auth.ChallengeSoftwareTokenMFA:
		return paramTOTPCode, true
	case auth.ChallengeEmailOTP:
		return paramEmailOTPCode, true
	default:
		return "", false
	}
}

// outcomeOf turns an auth API answer into an outcome. An answer with
// neither tokens nor a challenge is treated as a service fault.
func outcomeOf(
	ctx context.Context,
	result *types.AuthenticationResultType,
	challenge types.ChallengeNameType,
	params map[string]string,
	session *string,
	username string,
) (*auth.Outcome, error) {
	if result != nil {
		return auth.Succeeded(principalFromToken(result.IdToken, username)), nil
	}

	if challenge != "" {
		logger.DebugCtx(ctx, "user pool returned challenge", logger.Challenge(string(challenge)))
		return auth.Challenged(auth.Challenge{
			Name:    string(challenge),
			Session: aws.ToString(session),
			Detail:  maps.Clone(params),
		}), nil
	}

	return nil, fmt.Errorf("%w: empty authentication result", ErrServiceUnavailable)
}
