// Package buildtool compiles the shell under test. A build failure is
// fatal to the whole run: nothing can be tested without a binary.
package buildtool

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
)

// Build runs the configured build command, returning its combined output
// on failure. An empty command disables the build step (prebuilt binary).
func Build(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}

	argv, err := shlex.Split(command)
	if err != nil {
		return fmt.Errorf("parse build command: %w", err)
	}
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("build %q: %w\n%s", command, err, out)
	}
	return nil
}
