package ports

import "context"

// ScriptRunnerPort executes a manifest script through the system shell
// and returns its exit code.
type ScriptRunnerPort interface {
	Run(ctx context.Context, command string) (int, error)
}
