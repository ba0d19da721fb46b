package pammodule

import (
	"fmt"

	"github.com/msteinert/pam/v2"

	"github.com/marmos91/pamcognito/pkg/conversation"
)

// transaction adapts a Transaction to the conversation package.
// It lives for one entry-point call.
type transaction struct {
	tx Transaction
}

var (
	_ conversation.Transaction = (*transaction)(nil)
	_ conversation.Host        = (*transaction)(nil)
)

func (t *transaction) User(prompt string) (string, error) {
	return t.tx.GetUser(prompt)
}

func (t *transaction) AuthTok() (string, error) {
	return t.tx.GetItem(pam.Authtok)
}

func (t *transaction) Converse(style conversation.Style, prompt string) (string, error) {
	s, err := pamStyle(style)
	if err != nil {
		return "", err
	}
	return t.tx.Converse(s, prompt)
}

func (t *transaction) Service() string {
	s, _ := t.tx.GetItem(pam.Service)
	return s
}

func (t *transaction) RemoteHost() string {
	h, _ := t.tx.GetItem(pam.Rhost)
	return h
}

func pamStyle(s conversation.Style) (pam.Style, error) {
	switch s {
	case conversation.PromptEchoOff:
		return pam.PromptEchoOff, nil
	case conversation.PromptEchoOn:
		return pam.PromptEchoOn, nil
	case conversation.ErrorMsg:
		return pam.ErrorMsg, nil
	case conversation.TextInfo:
		return pam.TextInfo, nil
	default:
		return 0, fmt.Errorf("unsupported conversation style %s", s)
	}
}
