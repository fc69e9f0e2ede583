package switcher

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"llm-switch/src/discover"
	"llm-switch/src/util/progress"
)

// Method selects how a model is placed into the destination backend.
type Method string

const (
	MethodCopy Method = "copy"
	MethodLink Method = "link"
)

// ParseMethod validates a user-supplied method string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCopy, MethodLink:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown method %q (want copy or link)", s)
}

// Reason classifies why a switch did not succeed.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonSkipped         Reason = "skipped" // user declined overwrite
	ReasonDirCreateFailed Reason = "dir-create-failed"
	ReasonRemoveFailed    Reason = "remove-failed"
	ReasonCopyFailed      Reason = "copy-failed"
	ReasonLinkFailed      Reason = "link-failed"
)

// Outcome reports the terminal state of one switch attempt. MethodUsed may
// differ from the requested method when the link→copy fallback fired.
type Outcome struct {
	Success    bool
	DestPath   string
	MethodUsed Method
	FellBack   bool
	Reason     Reason
	Err        error
}

// Request describes one relocation: the discovered record, the destination
// backend's write directory, and the requested method.
type Request struct {
	Source  discover.ModelRecord
	DestDir string
	Method  Method
}

// Switcher executes relocations. ConfirmOverwrite is consulted when the
// destination slot is occupied; a nil hook declines every conflict. Progress,
// when non-nil, receives copy progress lines.
type Switcher struct {
	Caps             Capabilities
	ConfirmOverwrite func(dest string) (bool, error)
	Progress         io.Writer
}

// Switch relocates the source model into the destination directory. It is a
// plain sequence of filesystem calls; every failure is converted into an
// Outcome carrying the cause, never propagated as a fault. Re-running after a
// success re-enters the conflict branch because the destination now exists.
func (s *Switcher) Switch(req Request) Outcome {
	dest := filepath.Join(req.DestDir, filepath.Base(req.Source.Path))

	if err := os.MkdirAll(req.DestDir, 0o755); err != nil {
		return Outcome{DestPath: dest, Reason: ReasonDirCreateFailed, Err: fmt.Errorf("create destination directory: %w", err)}
	}

	if info, err := os.Lstat(dest); err == nil {
		ok := false
		if s.ConfirmOverwrite != nil {
			var cerr error
			ok, cerr = s.ConfirmOverwrite(dest)
			if cerr != nil {
				return Outcome{DestPath: dest, Reason: ReasonSkipped, Err: cerr}
			}
		}
		if !ok {
			return Outcome{DestPath: dest, Reason: ReasonSkipped}
		}
		if err := removeExisting(dest, info); err != nil {
			return Outcome{DestPath: dest, Reason: ReasonRemoveFailed, Err: fmt.Errorf("remove existing entry: %w", err)}
		}
	}

	switch req.Method {
	case MethodLink:
		if s.Caps.Symlink {
			if err := os.Symlink(req.Source.Path, dest); err != nil {
				return Outcome{DestPath: dest, Reason: ReasonLinkFailed, Err: fmt.Errorf("create symlink: %w", err)}
			}
			return Outcome{Success: true, DestPath: dest, MethodUsed: MethodLink}
		}
		if !s.Caps.CopyFallback {
			return Outcome{DestPath: dest, Reason: ReasonLinkFailed, Err: fmt.Errorf("symlinks unavailable and no fallback permitted")}
		}
		slog.Debug("symlinks unavailable, degrading to copy", "dest", dest)
		if err := s.copyFile(req.Source, dest); err != nil {
			return Outcome{DestPath: dest, Reason: ReasonCopyFailed, Err: err}
		}
		return Outcome{Success: true, DestPath: dest, MethodUsed: MethodCopy, FellBack: true}
	default: // copy
		if err := s.copyFile(req.Source, dest); err != nil {
			return Outcome{DestPath: dest, Reason: ReasonCopyFailed, Err: err}
		}
		return Outcome{Success: true, DestPath: dest, MethodUsed: MethodCopy}
	}
}

func removeExisting(dest string, info os.FileInfo) error {
	if info.IsDir() {
		return os.RemoveAll(dest)
	}
	// Regular file or symlink.
	return os.Remove(dest)
}

// copyFile duplicates contents, mode, and mtime from the source into dest.
// The data is written to a .partial sibling and renamed into place on
// completion, so an interrupted copy never leaves a half-written file under
// the destination name.
func (s *Switcher) copyFile(src discover.ModelRecord, dest string) error {
	in, err := os.Open(src.Path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	tmp := dest + ".partial"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	reader := progress.NewReader(in, info.Size(), "copying "+src.Name, s.Progress)
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync destination: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close destination: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize destination: %w", err)
	}
	// Mirror the source timestamps the way a plain cp -p would.
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		slog.Debug("preserving mtime failed", "dest", dest, "error", err)
	}
	return nil
}
