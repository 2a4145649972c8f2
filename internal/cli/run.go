package cli

import (
	"os"

	"github.com/spf13/cobra"

	"nexus-packages/internal/app"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script defined in nxs.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			result, err := service.Run(cmd.Context(), app.RunRequest{Script: args[0]})
			if err != nil {
				return err
			}
			if result.ExitCode != 0 {
				// Propagate the script's own exit code.
				os.Exit(result.ExitCode)
			}
			return nil
		},
	}
}
