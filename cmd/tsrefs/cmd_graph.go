package main

import (
	"encoding/json"

	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/fbkclanna/tsrefs/internal/ui"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the computed references of every package without writing",
		Args:  cobra.NoArgs,
		RunE:  runGraph,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runGraph(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	ws, logger, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	units := ws.Compiler(logger).Graph()

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(units)
	}

	tbl := ui.NewTable(out, "PACKAGE", "LOCATION", "REFERENCES")
	for _, u := range units {
		name := u.Name
		if u.Outcome == tsconfig.OutcomeSkipped {
			name += " (no " + ws.Config.ConfigName + ")"
		}
		tbl.ListRow(u.References, name, u.Location)
	}
	return tbl.Flush()
}
