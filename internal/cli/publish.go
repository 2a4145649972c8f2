package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus-packages/internal/app"
)

func newPublishCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "publish <name> <version> [description]",
		Short: "Publish a source directory as a custom package",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) > 2 {
				description = args[2]
			}
			service := newAppService()
			result, err := service.Publish(cmd.Context(), app.PublishRequest{
				Name:        args[0],
				Version:     args[1],
				Description: description,
				Path:        path,
			})
			if err != nil {
				return err
			}
			fmt.Printf("published %s@%s\n", result.Name, result.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Package source directory (default: project directory)")
	return cmd
}
