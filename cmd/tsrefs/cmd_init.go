package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/tsrefs/internal/config"
	"github.com/fbkclanna/tsrefs/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .tsrefs.yaml interactively or from flags",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().BoolP("yes", "y", false, "Write settings from flags and defaults without prompting")
	cmd.Flags().Bool("overwrite", false, "Replace an existing "+config.FileName)
	cmd.Flags().String("root-dir", "src", "Source directory for synthesized compilerOptions")
	cmd.Flags().String("out-dir", "lib", "Output directory for synthesized compilerOptions")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	yes, _ := cmd.Flags().GetBool("yes")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	root, cfg, err := workspace.LoadConfig(root, cmd.Flags())
	if err != nil {
		return err
	}

	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use --overwrite to replace it)", path)
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive init requires a TTY; use --yes to write settings from flags")
		}
		cfg, err = interactiveConfig(cmd.OutOrStdout(), cfg)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
	}

	// Session switches are not persisted.
	cfg.Verbose = false

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
