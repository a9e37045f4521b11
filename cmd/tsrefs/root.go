package main

import (
	"github.com/fbkclanna/tsrefs/internal/logging"
	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/snapshot"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/fbkclanna/tsrefs/internal/workspace"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tsrefs",
		Short:         "Keep TypeScript project references in sync with workspace dependencies",
		Long:          "tsrefs reads the workspace layout of a yarn monorepo and writes the project\nreferences of every package's tsconfig.json, plus the repository root.\nRunning tsrefs without a subcommand is the same as `tsrefs compile`.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompile,
	}

	pf := cmd.PersistentFlags()
	pf.String("root", ".", "Repository root directory")
	pf.String("resolver", manifest.KindYarn, "Workspace resolver: yarn, snapshot, or scan")
	pf.String("snapshot", snapshot.FileName, "Snapshot file read by the snapshot resolver")
	pf.String("config-name", tsconfig.FileName, "Build configuration file name")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	addCompileFlags(cmd)

	cmd.AddCommand(
		newCompileCmd(),
		newGraphCmd(),
		newSnapshotCmd(),
		newDoctorCmd(),
		newInitCmd(),
	)

	return cmd
}

// loadWorkspace loads settings and the resolved registry for the --root
// directory and returns a logger configured from them.
func loadWorkspace(cmd *cobra.Command) (*workspace.Context, zerolog.Logger, error) {
	root, _ := cmd.Flags().GetString("root")

	ws, err := workspace.Load(cmd.Context(), root, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cmd.ErrOrStderr(), ws.Config.Verbose)
	logger.Debug().
		Str("root", ws.Root).
		Str("resolver", ws.Config.Resolver).
		Str("config_file", ws.Config.FileUsed).
		Int("packages", ws.Registry.Len()).
		Msg("workspace loaded")
	return ws, logger, nil
}
