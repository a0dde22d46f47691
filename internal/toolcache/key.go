// Package toolcache locates, installs, and persists dotnet tools in a
// versioned tool cache laid out as <root>/<tool>/<version>/<arch>.
package toolcache

import (
	"path/filepath"
	"runtime"
)

// Key identifies a single cache entry.
type Key struct {
	Tool    string
	Version string
	// Arch defaults to the host architecture when empty.
	Arch string
}

// Path returns the entry directory under root.
func (k Key) Path(root string) string {
	arch := k.Arch
	if arch == "" {
		arch = HostArch()
	}
	return filepath.Join(root, k.Tool, k.Version, arch)
}

var goarch = runtime.GOARCH

// HostArch returns the host architecture in the naming used by CI tool
// caches (x64, x86, arm64, arm).
func HostArch() string {
	return archName(goarch)
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}
