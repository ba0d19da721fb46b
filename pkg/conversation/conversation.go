// Package conversation obtains credentials through the host conversation.
//
// The host (libpam, or a terminal in the operator CLI) is reached through
// the Transaction interface, which is implemented at the boundary and
// lives only for one entry-point call. Every value that carries secret
// material leaves this package as a *credential.Secret and is wiped on
// every error path before the function returns.
package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marmos91/pamcognito/pkg/auth/credential"
)

// Style is the kind of message sent through the conversation.
type Style int

const (
	// PromptEchoOff asks for a response that must not be echoed.
	PromptEchoOff Style = iota + 1
	// PromptEchoOn asks for a response that may be echoed.
	PromptEchoOn
	// ErrorMsg shows an error to the user.
	ErrorMsg
	// TextInfo shows an informational message to the user.
	TextInfo
)

func (s Style) String() string {
	switch s {
	case PromptEchoOff:
		return "prompt_echo_off"
	case PromptEchoOn:
		return "prompt_echo_on"
	case ErrorMsg:
		return "error_msg"
	case TextInfo:
		return "text_info"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// Transaction is the host side of one authentication attempt.
type Transaction interface {
	// User returns the username known to the host, prompting with prompt
	// (or the host default when empty) if none is set yet.
	User(prompt string) (string, error)

	// AuthTok returns a secret already supplied by an earlier module in the
	// stack, or "" when there is none.
	AuthTok() (string, error)

	// Converse sends one message and returns the user's response. Messages
	// of style ErrorMsg and TextInfo return "".
	Converse(style Style, prompt string) (string, error)
}

var (
	// ErrInvalidCredentials indicates the user cancelled or supplied an
	// empty value where one is mandatory.
	ErrInvalidCredentials = errors.New("conversation: invalid credentials")
)

// ConversationError indicates the host could not run the conversation.
type ConversationError struct {
	Op  string
	Err error
}

func (e *ConversationError) Error() string {
	return fmt.Sprintf("conversation: %s: %v", e.Op, e.Err)
}

func (e *ConversationError) Unwrap() error { return e.Err }

// Options controls how credentials are acquired.
type Options struct {
	// Prompt is the password prompt.
	Prompt string

	// UseFirstPass forbids prompting; only a secret already present in the
	// transaction is accepted.
	UseFirstPass bool
}

// Acquire obtains the username and secret for one authentication attempt.
//
// Returns a *ConversationError when the host fails and ErrInvalidCredentials
// when a mandatory value is empty. On success the caller owns the Pair and
// must wipe it.
func Acquire(tx Transaction, opts Options) (*credential.Pair, error) {
	username, err := tx.User("")
	if err != nil {
		return nil, &ConversationError{Op: "get user", Err: err}
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("empty username: %w", ErrInvalidCredentials)
	}

	secret, err := acquireSecret(tx, opts)
	if err != nil {
		return nil, err
	}
	return &credential.Pair{Username: username, Secret: secret}, nil
}

func acquireSecret(tx Transaction, opts Options) (*credential.Secret, error) {
	tok, err := tx.AuthTok()
	if err != nil {
		return nil, &ConversationError{Op: "get authtok", Err: err}
	}
	if tok != "" {
		return credential.NewSecret(tok), nil
	}

	if opts.UseFirstPass {
		return nil, fmt.Errorf("no password from a previous module: %w", ErrInvalidCredentials)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = "Password: "
	}
	return Answer(tx, prompt, false)
}

// Answer sends one prompt and returns the response as a Secret. It is
// used for the password and for challenge codes.
func Answer(tx Transaction, prompt string, echo bool) (*credential.Secret, error) {
	style := PromptEchoOff
	if echo {
		style = PromptEchoOn
	}

	resp, err := tx.Converse(style, prompt)
	secret := credential.NewSecret(resp)
	if err != nil {
		secret.Wipe()
		return nil, &ConversationError{Op: "converse", Err: err}
	}
	if secret.Empty() {
		secret.Wipe()
		return nil, fmt.Errorf("empty response: %w", ErrInvalidCredentials)
	}
	return secret, nil
}

// Notify shows msg to the user. Only ErrorMsg and TextInfo are accepted.
func Notify(tx Transaction, style Style, msg string) error {
	if style != ErrorMsg && style != TextInfo {
		return fmt.Errorf("conversation: notify with %s", style)
	}
	if _, err := tx.Converse(style, msg); err != nil {
		return &ConversationError{Op: "notify", Err: err}
	}
	return nil
}

// Host is implemented by transactions that can describe the calling
// service. It is used for logging only.
type Host interface {
	// Service returns the PAM service name (sshd, login, su, ...).
	Service() string

	// RemoteHost returns the remote host of the login, or "".
	RemoteHost() string
}
