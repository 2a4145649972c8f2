package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(result.Packages) == 0 {
				fmt.Println("no packages installed")
				return nil
			}
			fmt.Printf("installed packages (%d):\n", len(result.Packages))
			for _, pkg := range result.Packages {
				version := pkg.Version
				if version == "" {
					version = "-"
				}
				fmt.Printf("  %-30s %-14s %.2fMB\n", pkg.Name, version, float64(pkg.SizeBytes)/(1024*1024))
			}
			return nil
		},
	}
}
