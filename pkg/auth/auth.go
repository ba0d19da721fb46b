package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/marmos91/pamcognito/pkg/auth/credential"
	"github.com/marmos91/pamcognito/pkg/config"
)

// Verifier is the external identity verification call.
//
// Implementations return an Outcome for every answer the identity provider
// gives, including rejections. A non-nil error means no answer was obtained
// (network failure, throttling, provider fault, deadline) and is treated
// as service unavailable.
//
// Thread safety: implementations must be safe for concurrent use.
type Verifier interface {
	// Verify checks the credential pair against the provider.
	Verify(ctx context.Context, req *Request) (*Outcome, error)

	// Respond answers a challenge returned by an earlier Verify or Respond.
	Respond(ctx context.Context, req *ChallengeRequest) (*Outcome, error)

	// Name returns the verifier name for logging and diagnostics.
	Name() string
}

// Request is the input of one verification.
type Request struct {
	Config      *config.Config
	Credentials *credential.Pair
}

// ChallengeRequest answers one challenge round.
type ChallengeRequest struct {
	Config    *config.Config
	Username  string
	Challenge Challenge
	// Answer is wiped by the caller after Respond returns.
	Answer *credential.Secret
}

// OutcomeKind tags a verification outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeInvalidCredentials
	OutcomeUnknownPrincipal
	OutcomeServiceUnavailable
	OutcomeChallengeRequired
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeUnknownPrincipal:
		return "unknown_principal"
	case OutcomeServiceUnavailable:
		return "service_unavailable"
	case OutcomeChallengeRequired:
		return "challenge_required"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of a verification.
type Outcome struct {
	Kind OutcomeKind

	// Challenge is set when Kind is OutcomeChallengeRequired.
	Challenge *Challenge

	// Principal is the canonical name reported by the provider on success.
	// It may differ from the entered username (aliases, e-mail login).
	Principal string
}

// Succeeded returns a success outcome for principal.
func Succeeded(principal string) *Outcome {
	return &Outcome{Kind: OutcomeSuccess, Principal: principal}
}

// Rejected returns an outcome of the given kind with no detail.
func Rejected(kind OutcomeKind) *Outcome {
	return &Outcome{Kind: kind}
}

// Challenged returns a challenge-required outcome.
func Challenged(ch Challenge) *Outcome {
	return &Outcome{Kind: OutcomeChallengeRequired, Challenge: &ch}
}

// Challenge names, as used by Cognito.
const (
	ChallengeSMSMFA           = "SMS_MFA"
	ChallengeSoftwareTokenMFA = "SOFTWARE_TOKEN_MFA"
	ChallengeEmailOTP         = "EMAIL_OTP"
	ChallengeNewPassword      = "NEW_PASSWORD_REQUIRED"
	ChallengeMFASetup         = "MFA_SETUP"
	ChallengeSelectMFAType    = "SELECT_MFA_TYPE"
)

// Challenge is an additional step the provider requires before success.
type Challenge struct {
	// Name is the provider's challenge name, e.g. SMS_MFA.
	Name string

	// Session is the opaque token that ties the answer to the attempt.
	Session string

	// Detail carries provider parameters such as the code destination.
	// It never carries secrets.
	Detail map[string]string
}

// Answerable reports whether the challenge is answered by a single code
// the user can type into the conversation.
func (c *Challenge) Answerable() bool {
	if c == nil {
		return false
	}
	switch c.Name {
	case ChallengeSMSMFA, ChallengeSoftwareTokenMFA, ChallengeEmailOTP:
		return true
	default:
		return false
	}
}

// Prompt returns the conversation prompt for an answerable challenge.
func (c *Challenge) Prompt() string {
	dest := c.Detail["CODE_DELIVERY_DESTINATION"]
	switch c.Name {
	case ChallengeSMSMFA:
		if dest != "" {
			return fmt.Sprintf("SMS code sent to %s: ", dest)
		}
		return "SMS code: "
	case ChallengeEmailOTP:
		if dest != "" {
			return fmt.Sprintf("E-mail code sent to %s: ", dest)
		}
		return "E-mail code: "
	default:
		return "Authenticator code: "
	}
}

// Standard errors.
var (
	// ErrNoOutcome indicates a verifier returned neither an outcome nor an error.
	ErrNoOutcome = errors.New("auth: verifier returned no outcome")

	// ErrPanic indicates a panic was recovered during an attempt.
	ErrPanic = errors.New("auth: panic during authentication")
)
