package yarn

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Binary is the executable looked up on PATH.
const Binary = "yarn"

// WorkspacesInfo runs `yarn --silent workspaces info` in dir and returns its
// raw stdout.
func WorkspacesInfo(ctx context.Context, dir string) ([]byte, error) {
	return output(ctx, dir, "--silent", "workspaces", "info")
}

// Version returns the yarn version reported by `yarn --version`.
func Version(ctx context.Context, dir string) (string, error) {
	out, err := output(ctx, dir, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsInstalled returns true if yarn is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}

// output executes a yarn command and returns its stdout.
// Stderr is captured and included in the error message on failure.
func output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, Binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yarn %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
