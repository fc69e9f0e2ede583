package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lxc/incus/shared/units"
	"github.com/spf13/cobra"

	"llm-switch/src/activemodel"
	"llm-switch/src/discover"
)

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered model files without switching anything",
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
			records := discover.Scan(reg, discover.Options{MinSize: minSize})
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			case "table", "":
				active, err := activemodel.Read(activeConfigPath(opts, cfg))
				if err != nil {
					return err
				}
				return renderTable(stdout, records, active)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderTable(w io.Writer, records []discover.ModelRecord, active string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tMODEL\tSIZE\tMODIFIED\tPATH")
	for _, r := range records {
		name := r.Name
		if active != "" && r.Name == active {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Backend, name,
			units.GetByteSizeString(r.Size, 1), r.ModTime.Format("2006-01-02 15:04"), r.Path)
	}
	return tw.Flush()
}
