package discover

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llm-switch/src/registry"
)

// ModelRecord is a read-only snapshot of one discovered model file. The same
// file visible under two backends' search roots yields two records; that is
// deliberate (the bytes may be legitimately staged for either backend).
type ModelRecord struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Backend string    `json:"backend"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// DeepScanExtensions is the fixed extension set used by the unrestricted
// fallback scan.
var DeepScanExtensions = []string{".gguf", ".bin"}

// Options tune a scan. MinSize excludes files smaller than the given number
// of bytes; zero disables the filter.
type Options struct {
	MinSize int64
}

// Scan walks every backend's directories in registry order and returns the
// matching model files. Absent directories are skipped silently (the normal
// case for unused backends), as are unreadable subtrees. The result is
// deterministic for a given filesystem state: registry order first, then
// lexical traversal order within each directory.
func Scan(reg *registry.Registry, opts Options) []ModelRecord {
	var records []ModelRecord
	for _, b := range reg.Backends() {
		for _, dir := range b.Paths {
			records = append(records, scanDir(dir, b.Name, b.Extensions, opts)...)
		}
	}
	return records
}

// DeepScan walks a single broad root (typically the user's home directory)
// with the fixed extension set, tagging every match as unclassified. It is a
// fallback for an empty targeted scan and is only run on explicit request.
func DeepScan(root string, opts Options) []ModelRecord {
	return scanDir(root, registry.UnclassifiedBackend, DeepScanExtensions, opts)
}

func scanDir(dir, backend string, exts []string, opts Options) []ModelRecord {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	var records []ModelRecord
	// WalkDir is lexical and does not descend into symlinked directories,
	// which doubles as the guard against symlink cycles.
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !matchExtension(d.Name(), exts) {
			return nil
		}
		// Stat resolves symlinks, so a link to a regular file counts as a
		// file and carries the target's size and mtime.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		if opts.MinSize > 0 && info.Size() < opts.MinSize {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		records = append(records, ModelRecord{
			Name:    d.Name(),
			Path:    abs,
			Backend: backend,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	return records
}

// matchExtension reports whether name ends in one of the configured
// extensions. The match is case-sensitive on purpose: some runtimes reject
// files whose suffix case differs from what they ship with.
func matchExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
