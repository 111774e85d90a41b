package apply

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 120 * time.Second

// CommandExecutor runs external commands. The abstraction enables
// mocking in tests without a real git binary or network.
type CommandExecutor interface {
	Execute(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// RealExecutor implements CommandExecutor using os/exec.
type RealExecutor struct {
	Timeout time.Duration
}

// Execute runs the command in dir and returns its combined output.
func (r *RealExecutor) Execute(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %v: %w", name, args, err)
	}
	return out, nil
}
