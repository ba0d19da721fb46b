package logger

import "log/slog"

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so that syslog
// lines of one attempt can be correlated and queried.
//
// There is deliberately no key for the password or challenge answers.
const (
	// ========================================================================
	// Attempt
	// ========================================================================
	KeyAttempt    = "attempt"     // Per-attempt correlation ID
	KeyService    = "service"     // PAM service name
	KeyUser       = "user"        // Username as entered
	KeyPrincipal  = "principal"   // Canonical name reported by the identity provider
	KeyRemoteHost = "rhost"       // Remote host of the login, if known
	KeyEntryPoint = "entry_point" // PAM entry point: authenticate, setcred, ...

	// ========================================================================
	// Outcome
	// ========================================================================
	KeyStatus    = "status"    // Status returned to the host
	KeyOutcome   = "outcome"   // Verification outcome kind
	KeyChallenge = "challenge" // Challenge name requested by the provider
	KeyRound     = "round"     // Challenge round number

	// ========================================================================
	// Configuration
	// ========================================================================
	KeyOption   = "option"    // Configuration option that failed
	KeyRegion   = "region"    // AWS region of the user pool
	KeyPoolID   = "pool_id"   // User pool identifier
	KeyClientID = "client_id" // App client identifier
	KeyFlow     = "auth_flow" // Verification flow

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Provider error code
	KeyRequestID  = "request_id"  // Provider request ID
	KeyPanic      = "panic"       // Recovered panic value
)

// ============================================================================
// Field helpers
// ============================================================================

// Attempt returns the attempt correlation ID attribute
func Attempt(id string) slog.Attr {
	return slog.String(KeyAttempt, id)
}

// Service returns the PAM service attribute
func Service(name string) slog.Attr {
	return slog.String(KeyService, name)
}

// User returns the username attribute
func User(name string) slog.Attr {
	return slog.String(KeyUser, name)
}

// Principal returns the canonical principal attribute
func Principal(name string) slog.Attr {
	return slog.String(KeyPrincipal, name)
}

// EntryPoint returns the PAM entry point attribute
func EntryPoint(name string) slog.Attr {
	return slog.String(KeyEntryPoint, name)
}

// Status returns the host status attribute
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Outcome returns the verification outcome attribute
func Outcome(kind string) slog.Attr {
	return slog.String(KeyOutcome, kind)
}

// Challenge returns the challenge name attribute
func Challenge(name string) slog.Attr {
	return slog.String(KeyChallenge, name)
}

// Round returns the challenge round attribute
func Round(n int) slog.Attr {
	return slog.Int(KeyRound, n)
}

// Option returns the configuration option attribute
func Option(name string) slog.Attr {
	return slog.String(KeyOption, name)
}

// DurationMs returns the duration attribute in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns the error attribute. A nil error yields an empty attribute,
// which handlers skip.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns the provider error code attribute
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

// RequestID returns the provider request ID attribute
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}
