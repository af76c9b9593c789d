package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/kubev2v/profit-planner/internal/dataset"
	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/kubev2v/profit-planner/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type UploadOptions struct {
	GlobalOptions
	DryRun bool
	Output string

	out io.Writer
}

// DatasetSummary describes a parsed dataset file.
type DatasetSummary struct {
	File        string  `json:"file"`
	Records     int     `json:"records"`
	Countries   int     `json:"countries"`
	FirstYear   int     `json:"first_year"`
	LastYear    int     `json:"last_year"`
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
}

func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdUpload() *cobra.Command {
	o := DefaultUploadOptions()
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Replace the server's sales dataset with a CSV or XLSX file.",
		Example: "upload data/financial_sample.xlsx -u http://localhost:8080\n" +
			"upload data/financial_sample.csv --dry-run",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
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

func (o *UploadOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Parse the file and print a summary without uploading it")
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputUsage())
}

func (o *UploadOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *UploadOptions) Run(ctx context.Context, args []string) error {
	if o.DryRun {
		sales, err := dataset.Read(args[0])
		if err != nil {
			return fmt.Errorf("reading dataset file: %w", err)
		}
		summary := summarize(args[0], sales)
		return printOutput(o.out, o.Output, summary, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "FILE\t%s\n", summary.File)
			fmt.Fprintf(w, "RECORDS\t%d\n", summary.Records)
			fmt.Fprintf(w, "COUNTRIES\t%d\n", summary.Countries)
			fmt.Fprintf(w, "YEARS\t%d-%d\n", summary.FirstYear, summary.LastYear)
			fmt.Fprintf(w, "TOTAL SALES\t%s\n", util.FormatCurrency(summary.TotalSales))
			fmt.Fprintf(w, "TOTAL PROFIT\t%s\n", util.FormatCurrency(summary.TotalProfit))
		})
	}

	c, err := o.Client()
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	resp, err := c.UploadDataset(ctx, args[0], f)
	if err != nil {
		return fmt.Errorf("uploading dataset: %w", err)
	}

	fmt.Fprintf(o.out, "Dataset successfully uploaded: %d records\n", resp.Records)
	return nil
}

func summarize(file string, sales model.SaleList) DatasetSummary {
	summary := DatasetSummary{File: file, Records: len(sales)}
	if len(sales) == 0 {
		return summary
	}

	countries := map[string]struct{}{}
	years := make([]int, 0, len(sales))
	for _, s := range sales {
		countries[s.Country] = struct{}{}
		years = append(years, s.Year)
		summary.TotalSales += s.Sales
		summary.TotalProfit += s.Profit
	}
	sort.Ints(years)

	summary.Countries = len(countries)
	summary.FirstYear = years[0]
	summary.LastYear = years[len(years)-1]
	summary.TotalSales = util.RoundCurrency(summary.TotalSales)
	summary.TotalProfit = util.RoundCurrency(summary.TotalProfit)
	return summary
}
