package adapters

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nexus-packages/internal/ports"
)

// ScriptRunnerAdapter executes manifest scripts through the system
// shell with the project directory as working directory. Output streams
// straight to the caller's stdout/stderr.
type ScriptRunnerAdapter struct {
	WorkDir string
}

func NewScriptRunnerAdapter(workDir string) ScriptRunnerAdapter {
	return ScriptRunnerAdapter{WorkDir: workDir}
}

func (a ScriptRunnerAdapter) Run(ctx context.Context, command string) (int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = a.WorkDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to run script").
		WithCause(err)
}

var _ ports.ScriptRunnerPort = ScriptRunnerAdapter{}
