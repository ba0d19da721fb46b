// Package credential holds the per-attempt credential pair.
//
// A Pair is created by the conversation layer for exactly one authentication
// attempt and wiped before the attempt returns to the host. Nothing in this
// package keeps references to a Pair.
package credential

import (
	"fmt"
	"log/slog"
)

// Pair is the username and secret obtained for one authentication attempt.
type Pair struct {
	// Username is the principal name as entered or as known to the host.
	Username string

	// Secret is the password. Wiped by the caller on every exit path.
	Secret *Secret
}

// NewPair builds a Pair, copying password into a wipeable buffer.
func NewPair(username, password string) *Pair {
	return &Pair{Username: username, Secret: NewSecret(password)}
}

// Wipe clears the secret. Safe on a nil Pair.
func (p *Pair) Wipe() {
	if p == nil {
		return
	}
	p.Secret.Wipe()
}

// String implements fmt.Stringer. Only the username is shown.
func (p *Pair) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("credential{user=%s secret=%s}", p.Username, redacted)
}

// LogValue implements slog.LogValuer so a Pair passed to the logger never
// carries the secret.
func (p *Pair) LogValue() slog.Value {
	if p == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(slog.String("user", p.Username))
}
