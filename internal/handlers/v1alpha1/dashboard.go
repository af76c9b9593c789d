package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/pkg/log"
)

const (
	maxUploadSize   = 32 << 20
	datasetFormFile = "file"
)

func filterFromQuery(r *http.Request) (service.DashboardFilter, error) {
	q := r.URL.Query()
	filter := service.DashboardFilter{
		Country: q.Get("country"),
		Segment: q.Get("segment"),
	}
	if year := q.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return filter, fmt.Errorf("invalid year %q", year)
		}
		filter.Year = y
	}
	return filter, nil
}

// (GET /api/v1/dashboard/overview)
func (h *ServiceHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := h.dashboardSrv.Overview(r.Context(), filter)
	if err != nil {
		respondError(w, r, statusFor(err), err.Error())
		return
	}

	render.JSON(w, r, mappers.OverviewToApi(overview))
}

// (GET /api/v1/dashboard/yearly)
func (h *ServiceHandler) GetYearlyTrend(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := h.dashboardSrv.YearlyTrend(r.Context(), filter)
	if err != nil {
		respondError(w, r, statusFor(err), err.Error())
		return
	}

	render.JSON(w, r, mappers.YearlyTotalsToApi(totals))
}

// (GET /api/v1/dashboard/countries)
func (h *ServiceHandler) GetTopCountries(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", l))
			return
		}
	}

	totals, err := h.dashboardSrv.TopCountries(r.Context(), filter, limit)
	if err != nil {
		respondError(w, r, statusFor(err), err.Error())
		return
	}

	render.JSON(w, r, mappers.CountryTotalsToApi(totals))
}

// (POST /api/v1/dashboard/dataset)
func (h *ServiceHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("dashboard_handler").
		WithContext(ctx).
		Operation("upload_dataset").
		Build()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile(datasetFormFile)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("missing %q form file", datasetFormFile))
		return
	}
	defer file.Close()
	logger.Step("file_received").WithString("filename", header.Filename).WithInt("size", int(header.Size)).Log()

	created, err := h.dashboardSrv.UploadDataset(ctx, header.Filename, file)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, statusFor(err), err.Error())
		return
	}

	logger.Success().WithInt("records", int(created)).Log()
	respond(w, r, http.StatusCreated, api.DatasetImport{Records: created})
}
