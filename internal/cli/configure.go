package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/kubev2v/profit-planner/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ConfigureOptions struct {
	GlobalOptions
	Timeout string

	out io.Writer
}

func DefaultConfigureOptions() *ConfigureOptions {
	return &ConfigureOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdConfigure() *cobra.Command {
	o := DefaultConfigureOptions()
	cmd := &cobra.Command{
		Use:          "configure",
		Short:        "Save the server address to the client config file.",
		Example:      "configure -u http://localhost:8080 --timeout 10s",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ConfigureOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.Timeout, "timeout", o.Timeout, "Request timeout saved with the server address, e.g. 10s")
}

func (o *ConfigureOptions) Validate(args []string) error {
	if o.ServerUrl == "" {
		return fmt.Errorf("--server-url is required")
	}
	return o.GlobalOptions.Validate(args)
}

func (o *ConfigureOptions) Run(ctx context.Context, args []string) error {
	if err := client.WriteConfig(o.ConfigFilePath, client.Service{Server: o.ServerUrl, Timeout: o.Timeout}); err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Client config written to %s\n", o.ConfigFilePath)
	return nil
}
