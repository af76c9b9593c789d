package cli

import (
	"fmt"

	"github.com/kubev2v/profit-planner/pkg/version"
	"github.com/spf13/cobra"
)

func NewCmdVersion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print profit planner version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "Profit Planner Version: %s\n", versionInfo.String())
			return nil
		},
	}
	return cmd
}
