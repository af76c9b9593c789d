package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/handlers/validator"
	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/pkg/requestid"
)

type ServiceHandler struct {
	profitSrv    *service.ProfitService
	dashboardSrv *service.DashboardService
	validator    *validator.Validator
}

func NewServiceHandler(profitService *service.ProfitService, dashboardService *service.DashboardService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewEstimateValidationRules()...)

	return &ServiceHandler{
		profitSrv:    profitService,
		dashboardSrv: dashboardService,
		validator:    v,
	}
}

// Routes mounts the v1 API on r.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)
		r.Post("/profit/estimate", h.EstimateProfit)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/overview", h.GetOverview)
			r.Get("/yearly", h.GetYearlyTrend)
			r.Get("/countries", h.GetTopCountries)
			r.Post("/dataset", h.UploadDataset)
		})
	})
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Status{Status: "ok"})
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		invalidRequest *validator.ErrInvalidRequest
		invalidInput   *estimation.ErrInvalidInputDomain
		inference      *estimation.ErrModelInference
		invalidLimit   *service.ErrInvalidLimit
		emptyDataset   *service.ErrDatasetEmpty
		corrupted      *service.ErrFileCorrupted
	)
	switch {
	case errors.As(err, &invalidRequest),
		errors.As(err, &invalidInput),
		errors.As(err, &invalidLimit),
		errors.As(err, &emptyDataset),
		errors.As(err, &corrupted):
		return http.StatusBadRequest
	case errors.As(err, &inference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
