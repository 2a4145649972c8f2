package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus-packages/internal/app"
)

func newRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove installed resources",
	}
	cmd.AddCommand(newRemovePackageCommand())
	return cmd
}

func newRemovePackageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "package <name>",
		Short: "Remove a package from the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			result, err := service.Remove(cmd.Context(), app.RemoveRequest{Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Printf("removed %s\n", result.Name)
			return nil
		},
	}
}
