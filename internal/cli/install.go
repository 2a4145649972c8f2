package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nexus-packages/internal/app"
	"nexus-packages/internal/core"
)

func newInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <package> [package...]",
		Short: "Install one or more packages",
		Long:  "Install packages by name or name@version, resolved against the npm registry, the custom registry, and local directories in that order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args)
		},
	}
	return cmd
}

// runInstall processes each requested package independently: one
// failure is reported and does not prevent the others from installing.
func runInstall(cmd *cobra.Command, args []string) error {
	service := newAppService()
	var failed []string
	for _, arg := range args {
		name, version := core.SplitNameVersion(arg)
		result, err := service.Install(cmd.Context(), app.InstallRequest{
			Name:    name,
			Version: version,
		})
		if err != nil {
			// A corrupt registry is fatal for the whole batch; every
			// other failure only skips this package.
			if errbuilder.CodeOf(err) == errbuilder.CodeDataLoss {
				return err
			}
			fmt.Printf("error: %s: %s\n", name, errorMessage(err))
			failed = append(failed, name)
			continue
		}
		fmt.Printf("installed %s@%s (%s)\n", result.Name, result.Version, result.Kind)
	}
	if len(failed) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to install: %s", strings.Join(failed, ", ")))
	}
	return nil
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return false
	}
	return flag.Changed
}
