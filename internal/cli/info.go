package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type InfoOptions struct {
	GlobalOptions
	Output string
	Remote bool

	out io.Writer
}

func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        "",
		Remote:        false,
	}
}

func NewCmdInfo() *cobra.Command {
	o := DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print profit planner information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *InfoOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputUsage())
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Get information from the remote service")
}

func (o *InfoOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *InfoOptions) Validate() error {
	if err := o.GlobalOptions.Validate([]string{}); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

// InfoResponse represents the information we want to display
type InfoResponse struct {
	GitCommit   string   `json:"gitCommit"`
	VersionName string   `json:"versionName"`
	Modes       []string `json:"modes"`
}

func (o *InfoOptions) Run(ctx context.Context, args []string) error {
	var info InfoResponse
	var err error

	if o.Remote {
		info, err = o.getRemoteInfo(ctx)
		if err != nil {
			return fmt.Errorf("failed to get remote info: %w", err)
		}
	} else {
		versionInfo := version.Get()
		info = InfoResponse{
			GitCommit:   versionInfo.GitCommit,
			VersionName: versionInfo.GitVersion,
		}
		for _, m := range estimation.Modes {
			info.Modes = append(info.Modes, string(m))
		}
	}

	return o.printInfo(info)
}

func (o *InfoOptions) getRemoteInfo(ctx context.Context) (InfoResponse, error) {
	c, err := o.Client()
	if err != nil {
		return InfoResponse{}, fmt.Errorf("creating client: %w", err)
	}

	response, err := c.Info(ctx)
	if err != nil {
		return InfoResponse{}, fmt.Errorf("calling remote info endpoint: %w", err)
	}

	return InfoResponse{
		GitCommit:   response.GitCommit,
		VersionName: response.VersionName,
		Modes:       response.Modes,
	}, nil
}

func (o *InfoOptions) printInfo(info InfoResponse) error {
	return printOutput(o.out, o.Output, info, func(w *tabwriter.Writer) {
		source := "Local CLI"
		if o.Remote {
			source = "Remote Service"
		}
		fmt.Fprintf(w, "Profit Planner %s Information:\n", source)
		fmt.Fprintf(w, "  Version Name:\t%s\n", info.VersionName)
		fmt.Fprintf(w, "  Git Commit:\t%s\n", info.GitCommit)
		fmt.Fprintf(w, "  Modes:\t%s\n", strings.Join(info.Modes, ", "))
	})
}
