package main

/*
#include <stdlib.h>
#include <security/pam_modules.h>

int pam_cognito_get_string_item(pam_handle_t *pamh, int item, const char **out);
int pam_cognito_converse(pam_handle_t *pamh, int style, const char *text, char **out);
void pam_cognito_wipe_free(char *s);
*/
import "C"

import (
	"unsafe"

	"github.com/msteinert/pam/v2"

	"github.com/marmos91/pamcognito/pkg/pammodule"
)

// transaction is the pammodule.Transaction of one pam_sm_* call. The handle
// is only valid until that call returns.
type transaction struct {
	pamh *C.pam_handle_t
}

var _ pammodule.Transaction = (*transaction)(nil)

func (t *transaction) GetUser(prompt string) (string, error) {
	var cPrompt *C.char
	if prompt != "" {
		cPrompt = C.CString(prompt)
		defer C.free(unsafe.Pointer(cPrompt))
	}

	var user *C.char
	if rc := C.pam_get_user(t.pamh, &user, cPrompt); rc != C.PAM_SUCCESS {
		return "", pam.Error(rc)
	}
	if user == nil {
		return "", pam.ErrUserUnknown
	}
	return C.GoString(user), nil
}

func (t *transaction) GetItem(item pam.Item) (string, error) {
	var value *C.char
	if rc := C.pam_cognito_get_string_item(t.pamh, C.int(item), &value); rc != C.PAM_SUCCESS {
		return "", pam.Error(rc)
	}
	if value == nil {
		return "", nil
	}
	return C.GoString(value), nil
}

func (t *transaction) Converse(style pam.Style, text string) (string, error) {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	var resp *C.char
	rc := C.pam_cognito_converse(t.pamh, C.int(style), cText, &resp)
	defer C.pam_cognito_wipe_free(resp)
	if rc != C.PAM_SUCCESS {
		return "", pam.Error(rc)
	}
	if resp == nil {
		return "", nil
	}
	return C.GoString(resp), nil
}
