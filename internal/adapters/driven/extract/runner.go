package extract

import (
	"context"
	"fmt"
	"os/exec"
)

// ExecRunner runs external commands with exec.CommandContext.
type ExecRunner struct{}

// Run executes name with args and returns stdout. Stderr is folded into
// the error on failure.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", name, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
