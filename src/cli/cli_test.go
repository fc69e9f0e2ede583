package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llm-switch/src/cli"
	"llm-switch/src/discover"
)

// isolate points HOME (and therefore the default config dir) at a scratch
// directory so tests never see the developer's real model folders, and
// clears the backend path overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("LLAMA_CPP_PATH", "")
	t.Setenv("LM_STUDIO_PATH", "")
	t.Setenv("JAN_AI_PATH", "")
	return home
}

func writeModel(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(stdin, &out, &errOut)
	cmd.SetArgs(args)
	_, err := cmd.ExecuteC()
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, strings.NewReader(""), "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("version output empty")
	}
}

func TestListCmd_EnvOverrideIncludesRecord(t *testing.T) {
	isolate(t)
	extra := t.TempDir()
	writeModel(t, filepath.Join(extra, "foo.gguf"), "weights")
	t.Setenv("LLAMA_CPP_PATH", extra)

	out, _, err := run(t, strings.NewReader(""), "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "foo.gguf") || !strings.Contains(out, "llama.cpp") {
		t.Fatalf("expected env-contributed record in output:\n%s", out)
	}
}

func TestListCmd_WithoutOverrideOmitsRecord(t *testing.T) {
	isolate(t)
	extra := t.TempDir()
	writeModel(t, filepath.Join(extra, "foo.gguf"), "weights")
	// LLAMA_CPP_PATH deliberately not set.

	out, _, err := run(t, strings.NewReader(""), "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "foo.gguf") {
		t.Fatalf("record leaked without the override:\n%s", out)
	}
}

func TestListCmd_JSON(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "bar.gguf"), "weights")

	out, _, err := run(t, strings.NewReader(""), "list", "--output", "json")
	if err != nil {
		t.Fatal(err)
	}
	var records []discover.ModelRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0].Name != "bar.gguf" || records[0].Backend != "llama.cpp" {
		t.Fatalf("records = %+v", records)
	}
}

func TestListCmd_ActiveModelAnnotation(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "bar.gguf"), "weights")
	conf := filepath.Join(home, "server.conf")
	writeModel(t, conf, "MODEL_NAME=\"bar.gguf\"\n")

	out, _, err := run(t, strings.NewReader(""), "list", "--active-config", conf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "bar.gguf *") {
		t.Fatalf("active model not annotated:\n%s", out)
	}
}

func TestSwitchCmd_CopyEndToEnd(t *testing.T) {
	home := isolate(t)
	src := filepath.Join(home, "models", "foo.gguf")
	writeModel(t, src, "model-weights")

	// Plain menus: model #1, destination #1 (LM Studio), copy.
	stdin := strings.NewReader("1\n1\nc\n")
	out, _, err := run(t, stdin, "switch", "--plain")
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}

	dest := filepath.Join(home, ".lmstudio", "models", "foo.gguf")
	got, rerr := os.ReadFile(dest)
	if rerr != nil || string(got) != "model-weights" {
		t.Fatalf("destination = %q, %v\n%s", got, rerr, out)
	}
	if src2, _ := os.ReadFile(src); string(src2) != "model-weights" {
		t.Fatal("source mutated by copy")
	}
}

func TestSwitchCmd_MethodFlagSkipsPrompt(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "foo.gguf"), "w")

	// No method answer on stdin: --method must cover it.
	stdin := strings.NewReader("1\n1\n")
	if _, _, err := run(t, stdin, "switch", "--plain", "--method", "copy"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(home, ".lmstudio", "models", "foo.gguf")); err != nil {
		t.Fatal(err)
	}
}

func TestSwitchCmd_CancelIsClean(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "foo.gguf"), "w")

	stdin := strings.NewReader("0\n")
	out, _, err := run(t, stdin, "switch", "--plain")
	if err != nil {
		t.Fatalf("cancellation must not be an error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No model selected") {
		t.Fatalf("missing cancellation note:\n%s", out)
	}
}

func TestSwitchCmd_OverwriteDeclinedIsClean(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "foo.gguf"), "new")
	occupied := filepath.Join(home, ".lmstudio", "models", "foo.gguf")
	writeModel(t, occupied, "old")

	// Record #1 is the llama.cpp copy; destination #1 is LM Studio, whose
	// slot is occupied. Decline the overwrite.
	stdin := strings.NewReader("1\n1\nc\nn\n")
	out, _, err := run(t, stdin, "switch", "--plain")
	if err != nil {
		t.Fatalf("declined overwrite must exit clean: %v\n%s", err, out)
	}
	if got, _ := os.ReadFile(occupied); string(got) != "old" {
		t.Fatalf("declined overwrite mutated destination: %q", got)
	}
}

func TestSwitchCmd_YesFlagOverwrites(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "foo.gguf"), "new")
	occupied := filepath.Join(home, ".lmstudio", "models", "foo.gguf")
	writeModel(t, occupied, "old")

	stdin := strings.NewReader("1\n1\nc\n")
	if _, _, err := run(t, stdin, "switch", "--plain", "--yes"); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(occupied); string(got) != "new" {
		t.Fatalf("destination = %q, want overwritten", got)
	}
}

func TestSwitchCmd_EmptyDiscoveryFailsAfterDeclinedRescues(t *testing.T) {
	isolate(t)

	// Decline the deep scan, then cancel the manual path prompt.
	stdin := strings.NewReader("n\n\n")
	_, _, err := run(t, stdin, "switch", "--plain")
	if err == nil {
		t.Fatal("empty discovery with declined rescues must fail")
	}
	if !strings.Contains(err.Error(), "no models found") {
		t.Fatalf("err = %v", err)
	}
}

func TestSwitchCmd_ManualDirectoryAdditionRescues(t *testing.T) {
	home := isolate(t)
	stash := filepath.Join(home, "stash")
	writeModel(t, filepath.Join(stash, "hidden.gguf"), "w")

	// Decline deep scan, supply the stash dir, then pick the model, the
	// first destination, and copy.
	stdin := strings.NewReader("n\n" + stash + "\n1\n1\nc\n")
	out, _, err := run(t, stdin, "switch", "--plain")
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "hidden.gguf") {
		t.Fatalf("manually added directory not rescanned:\n%s", out)
	}
}

func TestSwitchCmd_InvalidMethodFlag(t *testing.T) {
	home := isolate(t)
	writeModel(t, filepath.Join(home, "models", "foo.gguf"), "w")

	if _, _, err := run(t, strings.NewReader("1\n1\n"), "switch", "--plain", "--method", "move"); err == nil {
		t.Fatal("invalid --method must fail")
	}
}
