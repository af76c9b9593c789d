package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/client"
	"github.com/kubev2v/profit-planner/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type OverviewOptions struct {
	GlobalOptions

	Country string
	Segment string
	Year    int
	Limit   int
	Output  string

	out io.Writer
}

// DashboardReport gathers the dashboard KPIs for display.
type DashboardReport struct {
	Overview     api.Overview       `json:"overview"`
	Years        []api.YearlyTotal  `json:"years"`
	TopCountries []api.CountryTotal `json:"topCountries"`
}

func DefaultOverviewOptions() *OverviewOptions {
	return &OverviewOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Limit:         10,
	}
}

func NewCmdOverview() *cobra.Command {
	o := DefaultOverviewOptions()
	cmd := &cobra.Command{
		Use:          "overview",
		Short:        "Display the sales dashboard: KPIs, yearly trend and top countries.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *OverviewOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Country, "country", o.Country, "Only include sales of this country")
	fs.StringVar(&o.Segment, "segment", o.Segment, "Only include sales of this segment")
	fs.IntVar(&o.Year, "year", o.Year, "Only include sales of this year")
	fs.IntVar(&o.Limit, "limit", o.Limit, "Number of top countries to display")
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputUsage())
}

func (o *OverviewOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *OverviewOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return validateOutput(o.Output)
}

func (o *OverviewOptions) Run(ctx context.Context, args []string) error {
	c, err := o.Client()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	query := client.DashboardQuery{Country: o.Country, Segment: o.Segment, Year: o.Year}

	overview, err := c.Overview(ctx, query)
	if err != nil {
		return fmt.Errorf("reading overview: %w", err)
	}
	trend, err := c.YearlyTrend(ctx, query)
	if err != nil {
		return fmt.Errorf("reading yearly trend: %w", err)
	}
	top, err := c.TopCountries(ctx, query, o.Limit)
	if err != nil {
		return fmt.Errorf("reading top countries: %w", err)
	}

	report := DashboardReport{Overview: *overview, Years: trend.Years, TopCountries: top.Countries}
	return printOutput(o.out, o.Output, report, func(w *tabwriter.Writer) {
		printReportTable(w, report)
	})
}

func printReportTable(w *tabwriter.Writer, report DashboardReport) {
	fmt.Fprintf(w, "TOTAL SALES\t%s\n", util.FormatCurrency(report.Overview.TotalSales))
	fmt.Fprintf(w, "TOTAL PROFIT\t%s\n", util.FormatCurrency(report.Overview.TotalProfit))
	fmt.Fprintf(w, "UNITS SOLD\t%.0f\n", report.Overview.UnitsSold)
	fmt.Fprintf(w, "AVG MARGIN\t%.2f%%\n", report.Overview.AvgMarginPct)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "YEAR\tSALES\tPROFIT")
	for _, y := range report.Years {
		fmt.Fprintf(w, "%d\t%s\t%s\n", y.Year, util.FormatCurrency(y.Sales), util.FormatCurrency(y.Profit))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "COUNTRY\tSALES")
	for _, c := range report.TopCountries {
		fmt.Fprintf(w, "%s\t%s\n", c.Country, util.FormatCurrency(c.Sales))
	}
}
