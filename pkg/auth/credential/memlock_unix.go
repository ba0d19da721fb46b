//go:build linux || darwin || freebsd

package credential

import "golang.org/x/sys/unix"

// lockMemory pins buf in RAM. Failure (RLIMIT_MEMLOCK, empty buffer) is not
// an error: the secret is still wiped, it just may reach swap.
func lockMemory(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return unix.Mlock(buf) == nil
}

func unlockMemory(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munlock(buf)
}
