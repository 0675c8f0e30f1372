//go:build windows

package credfile

// flockLock is a no-op on Windows; the in-process mutex still serializes
// writers, and concurrent client processes are not a supported scenario
// there.
func flockLock(fd uintptr) error { return nil }

// flockUnlock is a no-op on Windows.
func flockUnlock(fd uintptr) error { return nil }
