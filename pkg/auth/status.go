package auth

import "fmt"

// Status is the result of an attempt as the host understands it.
type Status int

const (
	StatusSuccess Status = iota
	StatusAuthErr
	StatusUserUnknown
	StatusServiceUnavailable
	StatusGenericError
)

// String returns the PAM name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "PAM_SUCCESS"
	case StatusAuthErr:
		return "PAM_AUTH_ERR"
	case StatusUserUnknown:
		return "PAM_USER_UNKNOWN"
	case StatusServiceUnavailable:
		return "PAM_AUTHINFO_UNAVAIL"
	case StatusGenericError:
		return "PAM_SERVICE_ERR"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// StatusOf maps an outcome to a status. The mapping is total: a nil
// outcome or an unknown kind is a generic error, and a challenge that
// was left unanswered is an authentication error.
func StatusOf(o *Outcome) Status {
	if o == nil {
		return StatusGenericError
	}
	switch o.Kind {
	case OutcomeSuccess:
		return StatusSuccess
	case OutcomeInvalidCredentials:
		return StatusAuthErr
	case OutcomeUnknownPrincipal:
		return StatusUserUnknown
	case OutcomeServiceUnavailable:
		return StatusServiceUnavailable
	case OutcomeChallengeRequired:
		return StatusAuthErr
	default:
		return StatusGenericError
	}
}
