package pammodule

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/msteinert/pam/v2"

	"github.com/marmos91/pamcognito/internal/logger"
)

// Transaction is the view of a PAM handle available to a module during one
// entry-point call. The shared object implements it over pam_get_user,
// pam_get_item and the application's conversation function.
type Transaction interface {
	// GetUser returns PAM_USER, prompting through the conversation when
	// it is unset. An empty prompt selects the libpam default.
	GetUser(prompt string) (string, error)

	// GetItem returns a string item such as pam.Authtok or pam.Rhost.
	// An unset item is the empty string.
	GetItem(item pam.Item) (string, error)

	// Converse sends one message and returns the reply, which is empty
	// for ErrorMsg and TextInfo.
	Converse(style pam.Style, text string) (string, error)
}

// Handler implements the six service module entry points. A nil error is
// PAM_SUCCESS; a pam.Error is returned to libpam as is.
type Handler interface {
	Authenticate(tx Transaction, flags pam.Flags, args []string) error
	SetCred(tx Transaction, flags pam.Flags, args []string) error
	AcctMgmt(tx Transaction, flags pam.Flags, args []string) error
	ChangeAuthTok(tx Transaction, flags pam.Flags, args []string) error
	OpenSession(tx Transaction, flags pam.Flags, args []string) error
	CloseSession(tx Transaction, flags pam.Flags, args []string) error
}

// EntryPoint identifies a pam_sm_* function.
type EntryPoint int

const (
	EntryAuthenticate EntryPoint = iota
	EntrySetCred
	EntryAcctMgmt
	EntryChangeAuthTok
	EntryOpenSession
	EntryCloseSession
)

func (e EntryPoint) String() string {
	switch e {
	case EntryAuthenticate:
		return "pam_sm_authenticate"
	case EntrySetCred:
		return "pam_sm_setcred"
	case EntryAcctMgmt:
		return "pam_sm_acct_mgmt"
	case EntryChangeAuthTok:
		return "pam_sm_chauthtok"
	case EntryOpenSession:
		return "pam_sm_open_session"
	case EntryCloseSession:
		return "pam_sm_close_session"
	default:
		return fmt.Sprintf("EntryPoint(%d)", int(e))
	}
}

// errUnknownEntryPoint is returned by Call for an EntryPoint outside the six.
var errUnknownEntryPoint = errors.New("pammodule: unknown entry point")

// Call dispatches ep to h. A panic in h is logged and becomes pam.ErrService.
func Call(h Handler, ep EntryPoint, tx Transaction, flags pam.Flags, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered panic in entry point",
				logger.EntryPoint(ep.String()),
				logger.KeyPanic, fmt.Sprint(r),
				"stack", string(debug.Stack()))
			err = pam.ErrService
		}
	}()

	switch ep {
	case EntryAuthenticate:
		return h.Authenticate(tx, flags, args)
	case EntrySetCred:
		return h.SetCred(tx, flags, args)
	case EntryAcctMgmt:
		return h.AcctMgmt(tx, flags, args)
	case EntryChangeAuthTok:
		return h.ChangeAuthTok(tx, flags, args)
	case EntryOpenSession:
		return h.OpenSession(tx, flags, args)
	case EntryCloseSession:
		return h.CloseSession(tx, flags, args)
	default:
		logger.Error("unknown entry point", logger.EntryPoint(ep.String()))
		return errUnknownEntryPoint
	}
}

// Code converts the result of Call to the integer handed back to libpam:
// 0 (PAM_SUCCESS) for nil, the value of a wrapped pam.Error, and
// PAM_SERVICE_ERR for anything else.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var perr pam.Error
	if errors.As(err, &perr) {
		return int(perr)
	}
	return int(pam.ErrService)
}
