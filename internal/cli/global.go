package cli

import (
	"github.com/kubev2v/profit-planner/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	ServerUrl      string
	ConfigFilePath string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigFilePath: client.DefaultClientConfigPath(),
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server. Overrides the client config file.")
	fs.StringVar(&o.ConfigFilePath, "config", o.ConfigFilePath, "Path to the client config file")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

// Client returns an API client for --server-url, or for the config file when no url is given.
func (o *GlobalOptions) Client() (*client.ProfitClient, error) {
	if o.ServerUrl == "" {
		return client.NewFromConfigFile(o.ConfigFilePath)
	}

	config := client.NewDefault()
	config.Service.Server = o.ServerUrl
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return client.NewFromConfig(config)
}
