package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/tsrefs/internal/compiler"
	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/fbkclanna/tsrefs/internal/ui"
	"github.com/fbkclanna/tsrefs/internal/workspace"
	"github.com/fbkclanna/tsrefs/internal/yarn"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and build configurations",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(out)
	ok := true
	fail := func(format string, args ...any) {
		_, _ = fmt.Fprintln(out, styles.Failed("FAILED"))
		_, _ = fmt.Fprintf(out, "  "+format+"\n", args...)
		ok = false
	}

	root, _ := cmd.Flags().GetString("root")

	// Settings.
	_, _ = fmt.Fprint(out, "Checking configuration... ")
	root, cfg, err := workspace.LoadConfig(root, cmd.Flags())
	if err != nil {
		fail("%v", err)
		return errors.New("doctor checks failed")
	}
	if cfg.FileUsed != "" {
		_, _ = fmt.Fprintf(out, "loaded %s\n", cfg.FileUsed)
	} else {
		_, _ = fmt.Fprintln(out, "using defaults")
	}
	_, _ = fmt.Fprintf(out, "  resolver: %s, config file: %s\n", cfg.Resolver, cfg.ConfigName)

	// Yarn is only required by the yarn resolver.
	_, _ = fmt.Fprint(out, "Checking yarn... ")
	switch {
	case yarn.IsInstalled():
		if v, verr := yarn.Version(cmd.Context(), root); verr == nil {
			_, _ = fmt.Fprintf(out, "found (version %s)\n", v)
		} else {
			fail("yarn --version failed: %v", verr)
		}
	case cfg.Resolver == manifest.KindYarn:
		fail("yarn is required by the yarn resolver. Install it, or use --resolver scan")
	default:
		_, _ = fmt.Fprintln(out, "not found (not needed by the "+cfg.Resolver+" resolver)")
	}

	// Manifest resolution.
	_, _ = fmt.Fprint(out, "Resolving workspaces... ")
	ws, err := workspace.Load(cmd.Context(), root, cmd.Flags())
	if err != nil {
		fail("%v", err)
		return errors.New("doctor checks failed")
	}
	_, _ = fmt.Fprintf(out, "%d packages\n", ws.Registry.Len())

	// Build configurations.
	_, _ = fmt.Fprintln(out, "Checking build configurations...")
	if !checkConfigs(cmd, ws) {
		ok = false
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return errors.New("doctor checks failed")
}

// checkConfigs reports units without a build configuration, malformed
// configurations, and configurations whose references are out of date.
func checkConfigs(cmd *cobra.Command, ws *workspace.Context) bool {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(out)
	ok := true

	var missing []compiler.UnitResult
	stale := 0
	for _, u := range ws.Compiler(zerolog.Nop()).Graph() {
		if u.Outcome == tsconfig.OutcomeSkipped {
			missing = append(missing, u)
			continue
		}
		path := filepath.Join(ws.Root, filepath.FromSlash(u.ConfigPath))
		change, err := tsconfig.Plan(path, u.References, tsconfig.Options{Defaults: ws.Config.Defaults()})
		if err != nil {
			_, _ = fmt.Fprintf(out, "  %s %s: %v\n", styles.Failed("malformed"), u.ConfigPath, err)
			ok = false
			continue
		}
		if change.Write {
			stale++
			_, _ = fmt.Fprintf(out, "  %s %s\n", styles.Status(string(tsconfig.OutcomePending)), u.ConfigPath)
		}
	}

	for _, u := range missing {
		_, _ = fmt.Fprintf(out, "  %s %s (%s does not take part in the reference graph)\n",
			styles.Status(string(tsconfig.OutcomeSkipped)), u.ConfigPath, u.Name)
	}
	if stale > 0 {
		_, _ = fmt.Fprintf(out, "  %d configuration(s) out of date; run tsrefs compile\n", stale)
	}
	return ok
}
