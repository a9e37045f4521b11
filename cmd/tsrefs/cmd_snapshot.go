package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/snapshot"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record the resolved workspace layout for the snapshot resolver",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	cmd.Flags().StringP("output", "o", "", "Snapshot file to write (default: the configured snapshot path)")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	ws, _, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if ws.Config.Resolver == manifest.KindSnapshot {
		return fmt.Errorf("snapshot needs a live resolver; use --resolver yarn or --resolver scan")
	}

	path := ws.Config.SnapshotPath(ws.Root)
	if output != "" {
		path, err = filepath.Abs(output)
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
	}

	f := manifest.ToSnapshot(ws.Registry, version, time.Now().UTC())
	if err := snapshot.Save(path, f); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range f.Names() {
		_, _ = fmt.Fprintf(out, "Recorded %s @ %s\n", name, f.Packages[name].Location)
	}
	_, _ = fmt.Fprintf(out, "Snapshot written to %s\n", path)
	return nil
}
