package main

import (
	"os"

	"github.com/kubev2v/profit-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewProfitCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewProfitCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profit [flags] [options]",
		Short: "profit estimates sales profit and reads the profit planner dashboard.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdOverview())
	cmd.AddCommand(cli.NewCmdUpload())
	cmd.AddCommand(cli.NewCmdConfigure())
	cmd.AddCommand(cli.NewCmdInfo())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
