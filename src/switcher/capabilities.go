package switcher

import (
	"os"
	"path/filepath"
)

// Capabilities answers, once per run, whether this platform and environment
// can create unprivileged symbolic links, and whether a failed link request
// may degrade to a copy. Resolving this up front keeps the link-or-copy
// decision an explicit branch instead of an error-driven retry.
type Capabilities struct {
	Symlink      bool
	CopyFallback bool
}

// DetectCapabilities probes symlink support for the given GOOS. On Windows,
// unprivileged symlink creation fails unless developer mode or elevation is
// enabled, so a throwaway link is attempted in probeDir and a copy fallback is
// permitted. Everywhere else symlinks are assumed to work and a link failure
// is terminal.
func DetectCapabilities(goos, probeDir string) Capabilities {
	if goos != "windows" {
		return Capabilities{Symlink: true}
	}
	caps := Capabilities{CopyFallback: true}
	if probeDir == "" {
		return caps
	}
	target := filepath.Join(probeDir, ".llm-switch-probe-target")
	link := filepath.Join(probeDir, ".llm-switch-probe-link")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		return caps
	}
	defer os.Remove(target)
	if err := os.Symlink(target, link); err == nil {
		os.Remove(link)
		caps.Symlink = true
	}
	return caps
}
