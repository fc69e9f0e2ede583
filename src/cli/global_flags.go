package cli

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"llm-switch/src/config"
	"llm-switch/src/registry"
)

// addGlobalFlags adds the persistent flags shared by all subcommands.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("plain", false, "Disable the interactive picker and use numbered menus")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to overwrite prompts")
	cmd.PersistentFlags().String("method", "", "Placement method: copy|link (skips the method prompt)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to the config file (default: <user config dir>/llm-switch/config.toml)")
	cmd.PersistentFlags().String("active-config", "", "Path to a backend config file carrying MODEL_NAME, used to highlight the active model")
}

type globalOptions struct {
	Plain        bool
	Yes          bool
	Method       string
	ConfigPath   string
	ActiveConfig string
}

func getGlobalOptions(cmd *cobra.Command) globalOptions {
	flags := cmd.Root().PersistentFlags()
	plain, _ := flags.GetBool("plain")
	yes, _ := flags.GetBool("yes")
	method, _ := flags.GetString("method")
	cfgPath, _ := flags.GetString("config")
	active, _ := flags.GetString("active-config")
	return globalOptions{Plain: plain, Yes: yes, Method: method, ConfigPath: cfgPath, ActiveConfig: active}
}

// setupRegistry loads the config file and builds the backend registry from
// platform defaults, environment overrides, and config extensions.
func setupRegistry(opts globalOptions) (*registry.Registry, config.Config, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfg, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, cfg, err
	}
	reg := registry.Build(registry.Options{
		GOOS:        runtime.GOOS,
		Home:        home,
		UserProfile: os.Getenv("USERPROFILE"),
		Getenv:      os.Getenv,
	})
	cfg.Apply(reg)
	return reg, cfg, nil
}

// activeConfigPath resolves the active-model file: flag wins over config.
func activeConfigPath(opts globalOptions, cfg config.Config) string {
	if opts.ActiveConfig != "" {
		return opts.ActiveConfig
	}
	return cfg.ActiveModelFile
}
