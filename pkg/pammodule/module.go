// Package pammodule implements the PAM service module entry points on top
// of the authentication bridge.
//
// The shared object in cmd/pam_cognito adapts the native pam_handle_t to
// Transaction and dispatches each pam_sm_* call through Call. Error codes,
// message styles, items and flags come from github.com/msteinert/pam/v2.
//
// Only Authenticate does any work; the account, credential, password and
// session entry points succeed without touching the transaction so the
// module can sit in every stack type.
package pammodule

import (
	"context"

	"github.com/msteinert/pam/v2"

	"github.com/marmos91/pamcognito/pkg/auth"
)

// Module dispatches the six PAM entry points.
type Module struct {
	bridge *auth.Bridge
}

var _ Handler = (*Module)(nil)

// New creates a Module that verifies credentials with v.
func New(v auth.Verifier) *Module {
	return &Module{bridge: auth.NewBridge(v)}
}

// Authenticate runs one authentication attempt and returns nil on success
// or the pam.Error matching the bridge status.
func (m *Module) Authenticate(tx Transaction, flags pam.Flags, args []string) error {
	var f auth.Flags
	if flags&pam.Silent != 0 {
		f |= auth.FlagSilent
	}

	status := m.bridge.Authenticate(context.Background(), &transaction{tx: tx}, f, args)
	return ErrorOf(status)
}

// SetCred has nothing to establish.
func (m *Module) SetCred(Transaction, pam.Flags, []string) error { return nil }

// AcctMgmt leaves account policy to other modules.
func (m *Module) AcctMgmt(Transaction, pam.Flags, []string) error { return nil }

// ChangeAuthTok does not change passwords in the user pool.
func (m *Module) ChangeAuthTok(Transaction, pam.Flags, []string) error { return nil }

// OpenSession has no session state.
func (m *Module) OpenSession(Transaction, pam.Flags, []string) error { return nil }

// CloseSession has no session state.
func (m *Module) CloseSession(Transaction, pam.Flags, []string) error { return nil }

// ErrorOf maps a bridge status to the error returned to libpam. Success
// is nil; unknown values become pam.ErrService.
func ErrorOf(s auth.Status) error {
	switch s {
	case auth.StatusSuccess:
		return nil
	case auth.StatusAuthErr:
		return pam.ErrAuth
	case auth.StatusUserUnknown:
		return pam.ErrUserUnknown
	case auth.StatusServiceUnavailable:
		return pam.ErrAuthinfoUnavail
	default:
		return pam.ErrService
	}
}
