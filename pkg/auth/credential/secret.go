package credential

import "sync"

// redacted is what a Secret prints as, whatever the verb.
const redacted = "[REDACTED]"

// Secret holds secret material (a password or a one-time code) in a byte
// buffer that can be overwritten in place.
//
// The buffer is memory-locked where the platform allows it so the secret is
// not written to swap. A Secret never formats its content: String, GoString
// and the fmt verbs all produce a redaction marker.
//
// Thread safety: Wipe may be called concurrently with itself; reads after
// Wipe observe a zeroed buffer.
type Secret struct {
	mu     sync.Mutex
	buf    []byte
	locked bool
	wiped  bool
}

// NewSecret copies s into a fresh buffer owned by the returned Secret.
//
// The caller's string cannot be cleared (Go strings are immutable), so the
// copy should be made as close to the boundary as possible.
func NewSecret(s string) *Secret {
	buf := make([]byte, len(s))
	copy(buf, s)
	return &Secret{buf: buf, locked: lockMemory(buf)}
}

// Bytes returns the live buffer. The slice aliases the Secret's storage and
// is zeroed by Wipe; callers must not retain it past the authentication call.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Reveal returns the secret as a string for APIs that only accept strings.
// The returned string is a copy that cannot be wiped.
func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf)
}

// Len returns the secret length in bytes.
func (s *Secret) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// Empty reports whether the secret has no content.
func (s *Secret) Empty() bool {
	return s.Len() == 0
}

// Wipe overwrites every byte of the buffer with zero and releases the
// memory lock. It is idempotent and safe on a nil Secret.
func (s *Secret) Wipe() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wiped {
		return
	}
	for i := range s.buf {
		s.buf[i] = 0
	}
	if s.locked {
		unlockMemory(s.buf)
		s.locked = false
	}
	s.wiped = true
}

// Wiped reports whether Wipe has run.
func (s *Secret) Wiped() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wiped
}

// String implements fmt.Stringer without exposing the secret.
func (s *Secret) String() string { return redacted }

// GoString implements fmt.GoStringer without exposing the secret.
func (s *Secret) GoString() string { return redacted }

// MarshalText keeps the secret out of JSON, YAML and slog output.
func (s *Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
