package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"llm-switch/src/config"
	"llm-switch/src/registry"
)

const sample = `
default_method = "link"
min_size = "1KiB"
active_model_file = "/etc/llama/server.conf"

[paths]
"llama.cpp" = ["/mnt/nas/models"]
"ollama" = ["/usr/share/ollama/models"]

[[backend]]
name = "ollama"
paths = ["/var/lib/ollama"]
extensions = [".gguf"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultMethod != "" || cfg.MinSize != "" || len(cfg.Backends) != 0 {
		t.Fatalf("zero config expected, got %+v", cfg)
	}
}

func TestLoad_ParsesAllKeys(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultMethod != "link" || cfg.ActiveModelFile != "/etc/llama/server.conf" {
		t.Fatalf("cfg = %+v", cfg)
	}
	n, err := cfg.MinSizeBytes()
	if err != nil || n != 1024 {
		t.Fatalf("min size = %d, err %v", n, err)
	}
}

func TestLoad_RejectsUnknownMethod(t *testing.T) {
	if _, err := config.Load(writeConfig(t, `default_method = "move"`)); err == nil {
		t.Fatal("invalid default_method must be rejected")
	}
}

func TestLoad_RejectsBadMinSize(t *testing.T) {
	if _, err := config.Load(writeConfig(t, `min_size = "lots"`)); err == nil {
		t.Fatal("invalid min_size must be rejected")
	}
}

func TestApply_ExtendsRegistry(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	reg := registry.Build(registry.Options{GOOS: "linux", Home: "/home/u", Getenv: func(string) string { return "" }})
	cfg.Apply(reg)

	llama := reg.Lookup("llama.cpp")
	if llama.Paths[len(llama.Paths)-1] != "/mnt/nas/models" {
		t.Fatalf("extra path not appended: %v", llama.Paths)
	}

	ollama := reg.Lookup("ollama")
	if ollama == nil {
		t.Fatal("custom backend not registered")
	}
	want := []string{"/var/lib/ollama", "/usr/share/ollama/models"}
	if !reflect.DeepEqual(ollama.Paths, want) {
		t.Fatalf("ollama paths = %v, want %v", ollama.Paths, want)
	}
	if !reflect.DeepEqual(ollama.Extensions, []string{".gguf"}) {
		t.Fatalf("ollama extensions = %v", ollama.Extensions)
	}
}

func TestMinSizeBytes_EmptyDisablesFilter(t *testing.T) {
	n, err := config.Config{}.MinSizeBytes()
	if err != nil || n != 0 {
		t.Fatalf("got %d, %v", n, err)
	}
}
