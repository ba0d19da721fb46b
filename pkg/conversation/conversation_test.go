package conversation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	style  Style
	prompt string
}

// fakeTx is a scripted Transaction that records every message.
type fakeTx struct {
	user     string
	userErr  error
	authtok  string
	tokErr   error
	replies  []string
	convErr  error
	messages []message
}

func (f *fakeTx) User(string) (string, error) { return f.user, f.userErr }

func (f *fakeTx) AuthTok() (string, error) { return f.authtok, f.tokErr }

func (f *fakeTx) Converse(style Style, prompt string) (string, error) {
	f.messages = append(f.messages, message{style, prompt})
	if f.convErr != nil {
		return "", f.convErr
	}
	if style == ErrorMsg || style == TextInfo || len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

// ============================================================================
// Acquire
// ============================================================================

func TestAcquire_PromptsWithEchoOff(t *testing.T) {
	tx := &fakeTx{user: "alice", replies: []string{"correct-pw"}}

	pair, err := Acquire(tx, Options{Prompt: "Cognito password: "})
	require.NoError(t, err)
	defer pair.Wipe()

	assert.Equal(t, "alice", pair.Username)
	assert.Equal(t, "correct-pw", pair.Secret.Reveal())
	require.Len(t, tx.messages, 1)
	assert.Equal(t, PromptEchoOff, tx.messages[0].style)
	assert.Equal(t, "Cognito password: ", tx.messages[0].prompt)
}

func TestAcquire_DefaultPrompt(t *testing.T) {
	tx := &fakeTx{user: "alice", replies: []string{"pw"}}

	pair, err := Acquire(tx, Options{})
	require.NoError(t, err)
	pair.Wipe()

	require.Len(t, tx.messages, 1)
	assert.Equal(t, "Password: ", tx.messages[0].prompt)
}

func TestAcquire_UsesExistingAuthTok(t *testing.T) {
	tx := &fakeTx{user: "alice", authtok: "stacked-pw"}

	pair, err := Acquire(tx, Options{})
	require.NoError(t, err)
	defer pair.Wipe()

	assert.Equal(t, "stacked-pw", pair.Secret.Reveal())
	assert.Empty(t, tx.messages, "must not prompt when a secret is present")
}

func TestAcquire_UseFirstPassNeverPrompts(t *testing.T) {
	tx := &fakeTx{user: "alice", replies: []string{"pw"}}

	pair, err := Acquire(tx, Options{UseFirstPass: true})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, tx.messages)
}

func TestAcquire_Failures(t *testing.T) {
	hostErr := errors.New("conversation function missing")

	tests := []struct {
		name         string
		tx           *fakeTx
		conversation bool
	}{
		{"user lookup fails", &fakeTx{userErr: hostErr}, true},
		{"empty user", &fakeTx{user: ""}, false},
		{"blank user", &fakeTx{user: "   "}, false},
		{"authtok lookup fails", &fakeTx{user: "alice", tokErr: hostErr}, true},
		{"conversation fails", &fakeTx{user: "alice", convErr: hostErr}, true},
		{"empty password", &fakeTx{user: "alice", replies: []string{""}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := Acquire(tt.tx, Options{})
			require.Error(t, err)
			assert.Nil(t, pair)

			var cerr *ConversationError
			if tt.conversation {
				require.ErrorAs(t, err, &cerr)
				assert.ErrorIs(t, err, hostErr)
			} else {
				assert.False(t, errors.As(err, &cerr))
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			}
		})
	}
}

func TestAcquire_PairHidesSecret(t *testing.T) {
	tx := &fakeTx{user: "alice", authtok: "hunter2"}
	pair, err := Acquire(tx, Options{})
	require.NoError(t, err)
	pair.Wipe()

	assert.NotContains(t, pair.String(), "hunter2")
	assert.True(t, pair.Secret.Wiped())
}

// ============================================================================
// Answer / Notify
// ============================================================================

func TestAnswer_EchoStyle(t *testing.T) {
	tx := &fakeTx{replies: []string{"123456", "654321"}}

	code, err := Answer(tx, "Code: ", true)
	require.NoError(t, err)
	assert.Equal(t, "123456", code.Reveal())
	code.Wipe()

	code, err = Answer(tx, "Code: ", false)
	require.NoError(t, err)
	code.Wipe()

	require.Len(t, tx.messages, 2)
	assert.Equal(t, PromptEchoOn, tx.messages[0].style)
	assert.Equal(t, PromptEchoOff, tx.messages[1].style)
}

func TestAnswer_Empty(t *testing.T) {
	tx := &fakeTx{}

	code, err := Answer(tx, "Code: ", true)
	assert.Nil(t, code)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNotify(t *testing.T) {
	tx := &fakeTx{}

	require.NoError(t, Notify(tx, TextInfo, "hello"))
	require.NoError(t, Notify(tx, ErrorMsg, "denied"))
	assert.Error(t, Notify(tx, PromptEchoOn, "not a notice"))

	assert.Equal(t, []message{{TextInfo, "hello"}, {ErrorMsg, "denied"}}, tx.messages)

	failing := &fakeTx{convErr: errors.New("no conv")}
	var cerr *ConversationError
	assert.ErrorAs(t, Notify(failing, TextInfo, "x"), &cerr)
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "prompt_echo_off", PromptEchoOff.String())
	assert.Equal(t, "text_info", TextInfo.String())
	assert.Equal(t, "style(42)", Style(42).String())
}
