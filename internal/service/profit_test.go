package service_test

import (
	"context"
	"errors"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func fixedPredictor(value float64, err error) estimation.PredictorFunc {
	return func(ctx context.Context, row estimation.FeatureVector) ([]float64, error) {
		if err != nil {
			return nil, err
		}
		return []float64{value}, nil
	}
}

var _ = Describe("ProfitService", func() {
	var (
		ctx   context.Context
		input estimation.SimulatorInput
	)

	BeforeEach(func() {
		ctx = context.Background()
		input = estimation.SimulatorInput{UnitsSold: 1000, SalePrice: 20, ManufacturingPrice: 12, Discount: 500, Month: 6}
	})

	Context("successful estimation", func() {
		It("returns the model prediction in pure ML mode", func() {
			srv := service.NewProfitService(fixedPredictor(7321.5, nil))

			evaluation, err := srv.Estimate(ctx, input, estimation.ModePureML)

			Expect(err).To(BeNil())
			Expect(evaluation.Profit).To(Equal(estimation.ProfitEstimate(7321.5)))
			Expect(evaluation.RuleProfit).To(Equal(estimation.ProfitEstimate(7500)))
			Expect(evaluation.Features.DiscountRatio).To(BeNumerically("~", 0.025, 1e-12))
		})

		It("returns the formula result in business adjusted mode", func() {
			srv := service.NewProfitService(fixedPredictor(7321.5, nil))

			evaluation, err := srv.Estimate(ctx, input, estimation.ModeBusinessAdjusted)

			Expect(err).To(BeNil())
			Expect(evaluation.Mode).To(Equal(estimation.ModeBusinessAdjusted))
			Expect(evaluation.Profit).To(Equal(estimation.ProfitEstimate(7500)))
			Expect(evaluation.MLProfit).To(Equal(estimation.ProfitEstimate(7321.5)))
		})
	})

	Context("failures", func() {
		It("returns an invalid input error for out of range month", func() {
			srv := service.NewProfitService(fixedPredictor(1, nil))
			input.Month = 13

			evaluation, err := srv.Estimate(ctx, input, estimation.ModePureML)

			Expect(evaluation).To(BeNil())
			var invalid *estimation.ErrInvalidInputDomain
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Field).To(Equal("month"))
		})

		It("returns an invalid input error for an unknown mode", func() {
			srv := service.NewProfitService(fixedPredictor(1, nil))

			_, err := srv.Estimate(ctx, input, estimation.Mode("hybrid"))

			var invalid *estimation.ErrInvalidInputDomain
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("returns a model inference error in both modes", func() {
			srv := service.NewProfitService(fixedPredictor(0, errors.New("model server unavailable")))

			for _, mode := range estimation.Modes {
				_, err := srv.Estimate(ctx, input, mode)
				var inference *estimation.ErrModelInference
				Expect(errors.As(err, &inference)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("model server unavailable"))
			}
		})
	})
})
