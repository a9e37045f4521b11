package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fbkclanna/tsrefs/internal/compiler"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/fbkclanna/tsrefs/internal/ui"
	"github.com/spf13/cobra"
)

var errOutOfDate = errors.New("build configurations are out of date")

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Write project references into every tsconfig.json",
		Args:  cobra.NoArgs,
		RunE:  runCompile,
	}
	addCompileFlags(cmd)
	return cmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Rewrite every existing build configuration")
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	cmd.Flags().Bool("check", false, "Fail if any build configuration is out of date (implies --dry-run)")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
	cmd.Flags().Bool("legacy-self-path", false, "Point every reference at the requesting package itself")
}

func runCompile(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	check, _ := cmd.Flags().GetBool("check")
	asJSON, _ := cmd.Flags().GetBool("json")

	ws, logger, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := ui.NewStyles(out)

	opts := ws.CompilerOptions(logger)
	opts.DryRun = dryRun || check
	if !asJSON {
		progress := ui.NewProgress(out, styles, ws.Registry.Len()+1)
		opts.OnUnit = func(r compiler.UnitResult) {
			progress.Step(r.ConfigPath, string(r.Outcome))
		}
	}

	report, err := compiler.New(ws.Registry, opts).Run()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if err := printReport(out, styles, report); err != nil {
		return err
	}

	if check {
		if n := len(report.Changed()); n > 0 {
			return fmt.Errorf("%w: %d file(s) need updating; run tsrefs compile", errOutOfDate, n)
		}
	}
	return nil
}

func printReport(out io.Writer, styles *ui.Styles, report *compiler.Report) error {
	changed := report.Changed()
	_, _ = fmt.Fprintln(out)
	if len(changed) == 0 {
		_, _ = fmt.Fprintln(out, "All build configurations are up to date.")
	} else {
		tbl := ui.NewTable(out, "CONFIG", "OUTCOME", "ADDED")
		for _, u := range changed {
			tbl.ListRow(u.Added, u.ConfigPath, u.Outcome)
		}
		if err := tbl.Flush(); err != nil {
			return err
		}
	}

	changedOutcome := tsconfig.OutcomeWritten
	if report.DryRun {
		changedOutcome = tsconfig.OutcomePending
	}
	_, _ = fmt.Fprintf(out, "%s %d %s, %d unchanged, %d skipped\n",
		styles.Title("Summary:"),
		report.Count(changedOutcome), changedOutcome,
		report.Count(tsconfig.OutcomeUnchanged),
		report.Count(tsconfig.OutcomeSkipped))
	return nil
}
