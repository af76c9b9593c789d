package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/profit-planner/pkg/log"
)

// (POST /api/v1/profit/estimate)
func (h *ServiceHandler) EstimateProfit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("profit_handler").
		WithContext(ctx).
		Operation("estimate_profit").
		Build()

	var body api.EstimateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := h.validator.Struct(body); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := mappers.ModeFromApi(body.Mode)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	logger.Step("request_validated").WithString("mode", string(mode)).Log()

	evaluation, err := h.profitSrv.Estimate(ctx, mappers.EstimateRequestToInput(body), mode)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, statusFor(err), err.Error())
		return
	}

	logger.Success().WithFloat("profit", float64(evaluation.Profit)).Log()
	respond(w, r, http.StatusOK, mappers.EvaluationToApi(*evaluation))
}
