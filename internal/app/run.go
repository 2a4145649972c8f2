package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Run executes a script declared in the manifest's scripts mapping and
// reports its exit code.
func (s Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	script := strings.TrimSpace(req.Script)
	if script == "" {
		return RunResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("script name is required")
	}
	command, err := s.Manifest.Script(script)
	if err != nil {
		return RunResult{}, err
	}
	log.Info().Str("script", script).Str("command", command).Msg("running script")
	exitCode, err := s.Runner.Run(ctx, command)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Command: command, ExitCode: exitCode}, nil
}
