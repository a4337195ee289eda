package reports

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cm-tools/church-admin/pkg/adapters"
	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/models/domain"
	"github.com/cm-tools/church-admin/pkg/services/access"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/report"
)

const dateLayout = "2006-01-02"

type Handler struct {
	store   report.Store
	checker access.Checker
}

func NewHandler(store report.Store, checker access.Checker) *Handler {
	return &Handler{store: store, checker: checker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats", h.Stats)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	reps, err := h.store.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list reports")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapReportsDomainToApi(reps))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	rep, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to get report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !h.checker.Can(ctx, access.ResourceReports, access.ActionCreate) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req api.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if !domain.TargetType(req.TargetType).Valid() {
		http.Error(w, fmt.Sprintf("unsupported target type %q", req.TargetType), http.StatusBadRequest)
		return
	}
	// The store does not validate items; the form rejects blank keys before
	// submission and the API mirrors that.
	for _, item := range req.Items {
		if item.ItemKey == "" {
			http.Error(w, "report items require an itemKey", http.StatusBadRequest)
			return
		}
	}

	rep, err := h.store.Create(ctx, adapters.MapCreateReportApiToDomain(req))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusCreated, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if !h.checker.Can(ctx, access.ResourceReports, access.ActionUpdate) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req api.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetType != nil && !domain.TargetType(*req.TargetType).Valid() {
		http.Error(w, fmt.Sprintf("unsupported target type %q", *req.TargetType), http.StatusBadRequest)
		return
	}
	for _, item := range req.Items {
		if item.ItemKey == "" {
			http.Error(w, "report items require an itemKey", http.StatusBadRequest)
			return
		}
	}

	rep, err := h.store.Update(ctx, id, adapters.MapUpdateReportApiToDomain(req))
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to update report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if !h.checker.Can(ctx, access.ResourceReports, access.ActionDelete) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to delete report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	// The aggregate view only honors target filters.
	filter := domain.ReportFilter{
		TargetType: domain.TargetType(r.URL.Query().Get("targetType")),
		TargetID:   r.URL.Query().Get("targetId"),
	}

	stats, err := h.store.Statistics(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute report statistics")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapReportStatsDomainToApi(stats))
}

// Export streams the filtered reports as CSV, one row per report item.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !h.checker.Can(ctx, access.ResourceReports, access.ActionExport) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	reps, err := h.store.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to export reports")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="reports.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"report_id", "title", "target_type", "target", "submitted_at", "item_key", "item_value"})
	for _, rep := range reps {
		submitted := rep.SubmittedAt.Format(time.RFC3339)
		if len(rep.Items) == 0 {
			_ = cw.Write([]string{rep.ID, rep.Title, string(rep.TargetType), rep.TargetName, submitted, "", ""})
			continue
		}
		for _, item := range rep.Items {
			_ = cw.Write([]string{
				rep.ID, rep.Title, string(rep.TargetType), rep.TargetName, submitted,
				item.ItemKey, itemValueString(item.Value),
			})
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error().Err(err).Msg("failed to write reports csv")
	}
}

func itemValueString(v domain.ItemValue) string {
	if n, ok := v.Number(); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	if t, ok := v.Text(); ok {
		return t
	}
	if raw, ok := v.JSON(); ok {
		return string(raw)
	}
	return ""
}

func parseFilter(w http.ResponseWriter, r *http.Request) (domain.ReportFilter, bool) {
	q := r.URL.Query()
	filter := domain.ReportFilter{
		TargetType:       domain.TargetType(q.Get("targetType")),
		TargetID:         q.Get("targetId"),
		ReporterPersonID: q.Get("reporterPersonId"),
		Search:           q.Get("search"),
	}

	if from := q.Get("periodStart"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			http.Error(w, "invalid 'periodStart' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return domain.ReportFilter{}, false
		}
		filter.PeriodStart = &t
	}
	if to := q.Get("periodEnd"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			http.Error(w, "invalid 'periodEnd' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return domain.ReportFilter{}, false
		}
		filter.PeriodEnd = &t
	}
	return filter, true
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
