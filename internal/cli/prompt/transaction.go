package prompt

import (
	"fmt"
	"io"

	"github.com/marmos91/pamcognito/pkg/conversation"
)

// Asker reads one response from the user.
type Asker func(prompt string) (string, error)

// Transaction runs a conversation on the terminal. It stands in for the
// libpam transaction when the bridge is exercised from the command line.
type Transaction struct {
	// Username is returned by User. When empty the user is asked.
	Username string

	// AuthToken plays the secret of an earlier module in the stack.
	AuthToken string

	// ServiceName is reported as the PAM service.
	ServiceName string

	// Out receives error and informational messages.
	Out io.Writer

	// Secret and Echo read masked and echoed responses. Default to
	// Password and Input.
	Secret Asker
	Echo   Asker
}

var (
	_ conversation.Transaction = (*Transaction)(nil)
	_ conversation.Host        = (*Transaction)(nil)
)

func (t *Transaction) User(prompt string) (string, error) {
	if t.Username != "" {
		return t.Username, nil
	}
	if prompt == "" {
		prompt = "login: "
	}
	return t.echo()(prompt)
}

func (t *Transaction) AuthTok() (string, error) {
	return t.AuthToken, nil
}

func (t *Transaction) Converse(style conversation.Style, prompt string) (string, error) {
	switch style {
	case conversation.PromptEchoOff:
		return t.secret()(prompt)
	case conversation.PromptEchoOn:
		return t.echo()(prompt)
	case conversation.ErrorMsg, conversation.TextInfo:
		if t.Out != nil {
			_, _ = fmt.Fprintln(t.Out, prompt)
		}
		return "", nil
	default:
		return "", fmt.Errorf("unsupported conversation style %s", style)
	}
}

func (t *Transaction) Service() string {
	if t.ServiceName == "" {
		return "pamcognitoctl"
	}
	return t.ServiceName
}

func (t *Transaction) RemoteHost() string { return "" }

func (t *Transaction) secret() Asker {
	if t.Secret != nil {
		return t.Secret
	}
	return Password
}

func (t *Transaction) echo() Asker {
	if t.Echo != nil {
		return t.Echo
	}
	return Input
}
