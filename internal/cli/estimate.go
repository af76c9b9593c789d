package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/profit-planner/internal/predictor"
	"github.com/kubev2v/profit-planner/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultModelPath = "model/profit_model.yaml"

type EstimateOptions struct {
	GlobalOptions

	UnitsSold          int
	SalePrice          float64
	ManufacturingPrice float64
	Discount           float64
	Month              int
	Mode               string
	ModelPath          string
	Remote             bool
	Output             string

	mode estimation.Mode
	out  io.Writer
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Month:         1,
		Mode:          string(estimation.ModePureML),
		ModelPath:     util.GetEnv("PROFIT_PLANNER_MODEL_PATH", defaultModelPath),
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the profit of a sales scenario.",
		Example: "estimate --units 1000 --sale-price 20 --manufacturing-price 12 --discount 500 --month 6 --mode business_adjusted\n" +
			"estimate --units 1000 --sale-price 20 --manufacturing-price 12 --month 6 --remote -u http://localhost:8080",
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.IntVar(&o.UnitsSold, "units", o.UnitsSold, "Number of units sold")
	fs.Float64Var(&o.SalePrice, "sale-price", o.SalePrice, "Sale price per unit")
	fs.Float64Var(&o.ManufacturingPrice, "manufacturing-price", o.ManufacturingPrice, "Manufacturing cost per unit")
	fs.Float64Var(&o.Discount, "discount", o.Discount, "Total discount amount")
	fs.IntVar(&o.Month, "month", o.Month, "Month of the sale (1-12)")
	fs.StringVar(&o.Mode, "mode", o.Mode, "Estimation mode. One of: (pure_ml, business_adjusted).")
	fs.StringVar(&o.ModelPath, "model", o.ModelPath, "Path to the model artifact used for local estimation")
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Estimate with the remote service instead of a local model")
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputUsage())
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	mode, err := estimation.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = mode

	return validateOutput(o.Output)
}

func (o *EstimateOptions) input() estimation.SimulatorInput {
	return estimation.SimulatorInput{
		UnitsSold:          o.UnitsSold,
		SalePrice:          o.SalePrice,
		ManufacturingPrice: o.ManufacturingPrice,
		Discount:           o.Discount,
		Month:              o.Month,
	}
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	var (
		result *api.EstimateResponse
		err    error
	)
	if o.Remote {
		result, err = o.estimateRemote(ctx)
	} else {
		result, err = o.estimateLocal(ctx)
	}
	if err != nil {
		return err
	}

	return printOutput(o.out, o.Output, result, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "MODE\t%s\n", result.ModeLabel)
		fmt.Fprintf(w, "ESTIMATED PROFIT\t%s\n", result.ProfitDisplay)
		fmt.Fprintf(w, "ML PROFIT\t%.2f\n", result.MlProfit)
		fmt.Fprintf(w, "RULE PROFIT\t%.2f\n", result.RuleProfit)
		fmt.Fprintf(w, "UNIT MARGIN\t%.2f\n", result.Features.UnitMargin)
		fmt.Fprintf(w, "DISCOUNT RATIO\t%.4f\n", result.Features.DiscountRatio)
	})
}

func (o *EstimateOptions) estimateLocal(ctx context.Context) (*api.EstimateResponse, error) {
	model, err := predictor.LoadLinearModel(o.ModelPath)
	if err != nil {
		return nil, err
	}

	evaluation, err := estimation.Evaluate(ctx, o.input(), o.mode, model)
	if err != nil {
		return nil, err
	}
	resp := mappers.EvaluationToApi(*evaluation)
	return &resp, nil
}

func (o *EstimateOptions) estimateRemote(ctx context.Context) (*api.EstimateResponse, error) {
	c, err := o.Client()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	mode := string(o.mode)
	req := api.EstimateRequest{
		UnitsSold:          &o.UnitsSold,
		SalePrice:          &o.SalePrice,
		ManufacturingPrice: &o.ManufacturingPrice,
		Discount:           &o.Discount,
		Month:              &o.Month,
		Mode:               &mode,
	}

	resp, err := c.Estimate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("estimating profit: %w", err)
	}
	return resp, nil
}
