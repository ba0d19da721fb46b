//go:build !linux && !darwin && !freebsd

package credential

func lockMemory(_ []byte) bool { return false }

func unlockMemory(_ []byte) {}
