package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"llm-switch/src/activemodel"
	"llm-switch/src/discover"
	"llm-switch/src/presenter"
	"llm-switch/src/registry"
	"llm-switch/src/switcher"
)

func newSwitchCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "switch",
		Short: "Pick a discovered model and copy or symlink it into another backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := getGlobalOptions(cmd)
			reg, cfg, err := setupRegistry(opts)
			if err != nil {
				return err
			}
			minSize, err := cfg.MinSizeBytes()
			if err != nil {
				return err
			}
			pres := newPresenter(opts.Plain, stdin, stdout)
			return runSwitch(reg, cfg.DefaultMethod, activeConfigPath(opts, cfg), opts, pres,
				discover.Options{MinSize: minSize}, stdout)
		},
	}
}

// newPresenter picks the UI once at startup: the bubbletea picker on a real
// terminal, numbered menus otherwise or when --plain is given.
func newPresenter(plain bool, in io.Reader, out io.Writer) presenter.Presenter {
	if plain || !isTerminal(out) {
		return presenter.NewPlain(in, out)
	}
	return presenter.NewInteractive(in, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// runSwitch drives the discover → select → switch sequence. A nil return is
// a clean termination (success or user cancellation); an error means exit 1.
func runSwitch(reg *registry.Registry, defaultMethod, activePath string, opts globalOptions,
	pres presenter.Presenter, dopts discover.Options, progressOut io.Writer) error {
	records := discover.Scan(reg, dopts)

	if len(records) == 0 {
		records = rescueScan(reg, pres, dopts)
	}
	if len(records) == 0 {
		return errors.New("no models found; check your backend paths or set variables like LLAMA_CPP_PATH")
	}

	active, err := activemodel.Read(activePath)
	if err != nil {
		return err
	}
	pres.ShowModels(records, active)

	rec, err := pres.ChooseModel(records)
	if errors.Is(err, presenter.ErrCancelled) {
		pres.Notify("No model selected. Exiting.")
		return nil
	} else if err != nil {
		return err
	}

	// A model never switches into its own backend; offer everything else
	// that has somewhere to write to.
	var destNames []string
	for _, b := range reg.Backends() {
		if b.Name != rec.Backend && len(b.Paths) > 0 {
			destNames = append(destNames, b.Name)
		}
	}
	if len(destNames) == 0 {
		pres.Notify("No other backends configured.")
		return nil
	}
	dest, err := pres.ChooseBackend(destNames)
	if errors.Is(err, presenter.ErrCancelled) {
		pres.Notify("No destination selected. Exiting.")
		return nil
	} else if err != nil {
		return err
	}

	var method switcher.Method
	if opts.Method != "" {
		method, err = switcher.ParseMethod(opts.Method)
		if err != nil {
			return err
		}
	} else {
		def := switcher.MethodCopy
		if defaultMethod == string(switcher.MethodLink) {
			def = switcher.MethodLink
		}
		method, err = pres.ChooseMethod(def)
		if errors.Is(err, presenter.ErrCancelled) {
			pres.Notify("No method selected. Exiting.")
			return nil
		} else if err != nil {
			return err
		}
	}

	destDir := reg.DestinationDir(dest)
	sw := &switcher.Switcher{
		Caps: switcher.DetectCapabilities(runtime.GOOS, destDir),
		ConfirmOverwrite: func(path string) (bool, error) {
			if opts.Yes {
				return true, nil
			}
			return pres.Confirm(fmt.Sprintf("File %s already exists. Overwrite?", path), false)
		},
		Progress: progressOut,
	}
	outcome := sw.Switch(switcher.Request{Source: rec, DestDir: destDir, Method: method})

	switch {
	case outcome.Success:
		if outcome.FellBack {
			pres.Notify("Symlink failed (may need admin or developer mode); fell back to copy.")
		}
		if outcome.MethodUsed == switcher.MethodLink {
			pres.Notify("Symbolic link created: %s", outcome.DestPath)
		} else {
			pres.Notify("Copied to %s", outcome.DestPath)
		}
		pres.Notify("Model switched successfully.")
		return nil
	case outcome.Reason == switcher.ReasonSkipped && outcome.Err == nil:
		pres.Notify("Skipping.")
		return nil
	default:
		return fmt.Errorf("switch failed (%s): %w", outcome.Reason, outcome.Err)
	}
}

// rescueScan runs the empty-discovery ladder: offer the unrestricted home
// scan, then manual directory additions, each followed by a full rescan.
func rescueScan(reg *registry.Registry, pres presenter.Presenter, dopts discover.Options) []discover.ModelRecord {
	var records []discover.ModelRecord

	if ok, _ := pres.Confirm("No models found in configured paths. Scan your home directory? (may be slow)", false); ok {
		if home, err := os.UserHomeDir(); err == nil {
			records = discover.DeepScan(home, dopts)
		}
	}

	for len(records) == 0 {
		path, err := pres.AskPath("Add a directory to search")
		if err != nil {
			break
		}
		reg.AddDirectory(registry.CustomBackend, path)
		records = discover.Scan(reg, dopts)
	}
	return records
}
