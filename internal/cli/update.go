package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
)

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Re-install every manifest dependency at latest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Update(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range result.Updated {
				fmt.Printf("updated %s\n", name)
			}
			if len(result.Failed) > 0 {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("failed to update: %s", strings.Join(result.Failed, ", ")))
			}
			return nil
		},
	}
}
