package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sgpulse/internal/errors"
	"sgpulse/internal/exporter"
	"sgpulse/internal/services"
	"sgpulse/pkg/contracts/domain"
)

// JobsHandler handles job analytics HTTP requests with RFC 7807 compliance
type JobsHandler struct {
	service      JobsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewJobsHandler creates a new jobs handler with RFC 7807 error handling
func NewJobsHandler(service JobsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *JobsHandler {
	return &JobsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "jobs_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the job analytics routes
func (h *JobsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/categories", h.GetCategories)
	r.Get("/positions", h.GetPositions)
	r.Get("/experience", h.GetExperience)
	r.Get("/insights", h.GetInsights)
	r.Get("/distribution", h.GetDistribution)
	r.Get("/filters", h.GetFilterOptions)
	r.Get("/export", h.Export)
	r.Post("/reload", h.Reload)

	return r
}

// GetSummary handles GET /api/jobs/summary
func (h *JobsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetCategories handles GET /api/jobs/categories
func (h *JobsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.service.Categories(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetPositions handles GET /api/jobs/positions
func (h *JobsHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.service.Positions(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetExperience handles GET /api/jobs/experience
func (h *JobsHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.service.Experience(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetInsights handles GET /api/jobs/insights
func (h *JobsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.service.Insights(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetDistribution handles GET /api/jobs/distribution
func (h *JobsHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := parseFilter(query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	bins := 0
	if raw := query.Get("bins"); raw != "" {
		bins, err = strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("bins", "must be an integer"))
			return
		}
	}

	resp, err := h.service.Distribution(r.Context(), filter, bins)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetFilterOptions handles GET /api/jobs/filters
func (h *JobsHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// Export handles GET /api/jobs/export, streaming the filtered postings as
// a CSV download.
func (h *JobsHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	postings, err := h.service.Postings(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="job_postings.csv"`)
	if err := exporter.Write(w, postings, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		h.logger.ErrorContext(r.Context(), "export failed", slog.String("error", err.Error()))
	}
}

// Reload handles POST /api/jobs/reload
func (h *JobsHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested")

	table, err := h.service.Reload(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"success":    true,
		"load_stats": table.Stats(),
	})
}

// handleServiceError maps service sentinels before falling back to the
// generic error handler.
func (h *JobsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrDataNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusServiceUnavailable,
			"SERVICE_UNAVAILABLE",
			"Dataset is not loaded yet",
			nil,
		))
	case errors.Is(err, services.ErrNoPostings):
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("postings matching the requested filters"))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// parseFilter builds a postings filter from query parameters. Invalid
// values produce field-level validation errors.
func parseFilter(query url.Values) (domain.Filter, error) {
	var filter domain.Filter

	filter.Category = query.Get("category")
	filter.PositionLevel = query.Get("position")

	if raw := query.Get("min_exp"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return filter, apierrors.ErrValidation("min_exp", "must be a non-negative integer")
		}
		filter.MinExperience = &v
	}
	if raw := query.Get("max_exp"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return filter, apierrors.ErrValidation("max_exp", "must be a non-negative integer")
		}
		filter.MaxExperience = &v
	}
	if filter.MinExperience != nil && filter.MaxExperience != nil && *filter.MinExperience > *filter.MaxExperience {
		return filter, apierrors.ErrValidation("min_exp", "must not exceed max_exp")
	}

	if raw := query.Get("min_salary"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, apierrors.ErrValidation("min_salary", "must be a non-negative number")
		}
		filter.MinSalary = &v
	}
	if raw := query.Get("max_salary"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, apierrors.ErrValidation("max_salary", "must be a non-negative number")
		}
		filter.MaxSalary = &v
	}
	if filter.MinSalary != nil && filter.MaxSalary != nil && *filter.MinSalary > *filter.MaxSalary {
		return filter, apierrors.ErrValidation("min_salary", fmt.Sprintf("must not exceed max_salary (%g)", *filter.MaxSalary))
	}

	return filter, nil
}
