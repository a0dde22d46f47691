//go:build windows

package toolcache

// withFileLock runs fn without cross-process locking.
func withFileLock(_ string, fn func() error) error {
	return fn()
}
