package registry

import (
	"os"
	"path/filepath"
	"strings"
)

// UnclassifiedBackend tags records produced by the deep-scan fallback.
const UnclassifiedBackend = "unclassified"

// CustomBackend is the synthetic backend that collects operator-added
// directories supplied interactively at runtime.
const CustomBackend = "custom"

// Backend is a named inference runtime with its model directory convention.
// Paths are ordered: the first entry is the write target when a model is
// switched into this backend.
type Backend struct {
	Name       string
	Paths      []string
	Extensions []string
}

// Registry holds all known backends in a stable order.
type Registry struct {
	backends []*Backend
}

// Options control how the default registry is built. Getenv is injectable so
// tests do not depend on the process environment.
type Options struct {
	GOOS        string
	Home        string
	UserProfile string
	Getenv      func(string) string
}

// Build constructs the registry from platform defaults plus <NAME>_PATH
// environment overrides. Directory existence is not checked here; absent
// directories are skipped at scan time and may be created by a later switch.
func Build(opts Options) *Registry {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	home := opts.Home
	profile := opts.UserProfile
	if profile == "" {
		profile = home
	}

	var llamaPaths, lmStudioPaths, janPaths []string
	if opts.GOOS == "windows" {
		llamaPaths = []string{
			filepath.Join(home, "models"),
			filepath.Join(home, "llama.cpp", "models"),
		}
		lmStudioPaths = []string{filepath.Join(profile, ".lmstudio", "models")}
		janPaths = []string{filepath.Join(profile, "jan", "models")}
	} else {
		// Linux, macOS, and anything unrecognized.
		llamaPaths = []string{
			filepath.Join(home, "models"),
			filepath.Join(home, "llama.cpp", "models"),
		}
		lmStudioPaths = []string{filepath.Join(home, ".lmstudio", "models")}
		janPaths = []string{filepath.Join(home, "jan", "models")}
	}

	r := &Registry{backends: []*Backend{
		{Name: "llama.cpp", Paths: llamaPaths, Extensions: []string{".gguf", ".bin"}},
		{Name: "LM Studio", Paths: lmStudioPaths, Extensions: []string{".gguf", ".bin"}},
		{Name: "Jan.ai", Paths: janPaths, Extensions: []string{".gguf"}},
	}}

	for _, b := range r.backends {
		if extra := opts.Getenv(EnvKey(b.Name)); extra != "" {
			b.Paths = append(b.Paths, filepath.SplitList(extra)...)
		}
		b.Paths = dedupe(b.Paths)
	}
	return r
}

// EnvKey returns the override variable name for a backend: uppercased, with
// spaces and dots normalized to underscores ("llama.cpp" -> "LLAMA_CPP_PATH").
func EnvKey(name string) string {
	k := strings.ToUpper(name)
	k = strings.NewReplacer(" ", "_", ".", "_").Replace(k)
	return k + "_PATH"
}

// Backends returns the backends in registration order.
func (r *Registry) Backends() []*Backend {
	return r.backends
}

// Names returns all backend names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for _, b := range r.backends {
		names = append(names, b.Name)
	}
	return names
}

// Lookup returns the backend with the given name, or nil.
func (r *Registry) Lookup(name string) *Backend {
	for _, b := range r.backends {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// AddBackend registers a new backend with deduplicated paths. If a backend
// with the same name exists, its paths are extended instead.
func (r *Registry) AddBackend(name string, paths, extensions []string) *Backend {
	if b := r.Lookup(name); b != nil {
		b.Paths = dedupe(append(b.Paths, paths...))
		if len(extensions) > 0 {
			b.Extensions = extensions
		}
		return b
	}
	b := &Backend{Name: name, Paths: dedupe(paths), Extensions: extensions}
	r.backends = append(r.backends, b)
	return b
}

// AddDirectory appends a search directory to the named backend, creating a
// synthetic backend (default extensions .gguf/.bin) when the name is unknown.
// Used for operator-added directories between discovery passes.
func (r *Registry) AddDirectory(backend, path string) *Backend {
	if b := r.Lookup(backend); b != nil {
		b.Paths = dedupe(append(b.Paths, path))
		return b
	}
	return r.AddBackend(backend, []string{path}, []string{".gguf", ".bin"})
}

// DestinationDir returns the write target (first configured directory) for a
// backend, or "" when the backend is unknown or has no directories.
func (r *Registry) DestinationDir(backend string) string {
	b := r.Lookup(backend)
	if b == nil || len(b.Paths) == 0 {
		return ""
	}
	return b.Paths[0]
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
