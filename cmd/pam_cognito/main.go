// Command pam_cognito is the PAM service module shared object.
//
// Build with:
//
//	go build -buildmode=c-shared -o pam_cognito.so ./cmd/pam_cognito
//
// and reference it from a PAM stack:
//
//	auth sufficient pam_cognito.so region=us-east-1 pool-id=us-east-1_Ab client-id=c1
package main

/*
#cgo LDFLAGS: -lpam
#include <security/pam_modules.h>

enum pam_cognito_entry {
	ENTRY_AUTHENTICATE,
	ENTRY_SETCRED,
	ENTRY_ACCT_MGMT,
	ENTRY_CHAUTHTOK,
	ENTRY_OPEN_SESSION,
	ENTRY_CLOSE_SESSION,
};
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/msteinert/pam/v2"

	"github.com/marmos91/pamcognito/internal/logger"
	"github.com/marmos91/pamcognito/pkg/auth/cognito"
	"github.com/marmos91/pamcognito/pkg/pammodule"
)

// logLevelEnv selects the log level of the module, read once at load.
const logLevelEnv = "PAM_COGNITO_LOG_LEVEL"

var module = pammodule.New(cognito.New())

func init() {
	if err := logger.Init(logger.Config{Output: "syslog", Level: os.Getenv(logLevelEnv)}); err != nil {
		// stderr may be the user's terminal; keep it quiet.
		logger.SetLevel("ERROR")
	}
}

//export goPamCall
func goPamCall(pamh *C.pam_handle_t, flags C.int, argc C.int, argv **C.char, entry C.int) C.int {
	args := make([]string, 0, int(argc))
	if argc > 0 && argv != nil {
		for _, arg := range unsafe.Slice(argv, int(argc)) {
			args = append(args, C.GoString(arg))
		}
	}

	err := pammodule.Call(module, entryPoint(entry), &transaction{pamh: pamh}, pam.Flags(flags), args)
	return C.int(pammodule.Code(err))
}

func entryPoint(entry C.int) pammodule.EntryPoint {
	switch entry {
	case C.ENTRY_AUTHENTICATE:
		return pammodule.EntryAuthenticate
	case C.ENTRY_SETCRED:
		return pammodule.EntrySetCred
	case C.ENTRY_ACCT_MGMT:
		return pammodule.EntryAcctMgmt
	case C.ENTRY_CHAUTHTOK:
		return pammodule.EntryChangeAuthTok
	case C.ENTRY_OPEN_SESSION:
		return pammodule.EntryOpenSession
	case C.ENTRY_CLOSE_SESSION:
		return pammodule.EntryCloseSession
	default:
		return pammodule.EntryPoint(-1)
	}
}

func main() {}
