// Package prompt provides interactive terminal prompts for pamcognitoctl,
// including a conversation.Transaction backed by the terminal.
package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// IsAborted returns true if the error indicates the user aborted (Ctrl+C).
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError converts promptui interrupt/abort errors to ErrAborted.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// label turns a PAM style prompt ("Password: ") into a promptui label,
// which adds its own colon.
func label(prompt string) string {
	return strings.TrimRight(prompt, ": ")
}

// Input prompts for echoed text input.
func Input(prompt string) (string, error) {
	p := promptui.Prompt{Label: label(prompt)}
	result, err := p.Run()
	return result, wrapError(err)
}
