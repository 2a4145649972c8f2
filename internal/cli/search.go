package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nexus-packages/internal/app"
)

// displayLimit caps how many merged results are printed.
const displayLimit = 10

type searchOptions struct {
	Limit int
}

func newSearchCommand() *cobra.Command {
	opts := searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the custom and npm registries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.Limit, "limit", 5, "Maximum npm results to request")
	_ = viper.BindPFlag("search_limit", cmd.Flags().Lookup("limit"))
	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	service := newAppService()
	result, err := service.Search(cmd.Context(), app.SearchRequest{
		Query: query,
		Limit: resolveInt(cmd, opts.Limit, "search_limit", "limit"),
	})
	if err != nil {
		return err
	}
	if len(result.Results) == 0 {
		fmt.Println("no packages found")
		return nil
	}
	fmt.Printf("found %d package(s):\n", len(result.Results))
	for i, hit := range result.Results {
		if i >= displayLimit {
			break
		}
		fmt.Printf("  %-40s (%s)\n", hit.Name, hit.Source)
	}
	return nil
}
