package attendance

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cm-tools/church-admin/pkg/adapters"
	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/models/domain"
	"github.com/cm-tools/church-admin/pkg/services/access"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/attendance"
)

const dateLayout = "2006-01-02"

type Handler struct {
	store   attendance.Store
	checker access.Checker
}

func NewHandler(store attendance.Store, checker access.Checker) *Handler {
	return &Handler{store: store, checker: checker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats", h.Stats)
	r.Post("/bulk", h.BulkMark)
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

	records, err := h.store.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list attendance records")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAttendanceRecordsDomainToApi(records))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "attendance record not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to get attendance record")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAttendanceRecordDomainToApi(rec))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !h.checker.Can(ctx, access.ResourceAttendance, access.ActionCreate) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req api.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.EventID == "" || req.PersonID == "" {
		http.Error(w, "eventId and personId are required", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !domain.AttendanceStatus(req.Status).Valid() {
		http.Error(w, fmt.Sprintf("unsupported status %q", req.Status), http.StatusBadRequest)
		return
	}

	rec, err := h.store.Create(ctx, adapters.MapCreateAttendanceApiToDomain(req))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create attendance record")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusCreated, adapters.MapAttendanceRecordDomainToApi(rec))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if !h.checker.Can(ctx, access.ResourceAttendance, access.ActionUpdate) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req api.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != nil && !domain.AttendanceStatus(*req.Status).Valid() {
		http.Error(w, fmt.Sprintf("unsupported status %q", *req.Status), http.StatusBadRequest)
		return
	}

	rec, err := h.store.Update(ctx, id, adapters.MapUpdateAttendanceApiToDomain(req))
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "attendance record not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to update attendance record")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAttendanceRecordDomainToApi(rec))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if !h.checker.Can(ctx, access.ResourceAttendance, access.ActionDelete) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, "attendance record not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to delete attendance record")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BulkMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !h.checker.Can(ctx, access.ResourceAttendance, access.ActionCreate) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req api.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.EventID == "" || len(req.PersonIDs) == 0 {
		http.Error(w, "eventId and personIds are required", http.StatusBadRequest)
		return
	}
	if !domain.AttendanceStatus(req.Status).Valid() {
		http.Error(w, fmt.Sprintf("unsupported status %q", req.Status), http.StatusBadRequest)
		return
	}

	records, err := h.store.BulkMark(ctx, adapters.MapBulkMarkApiToDomain(req))
	if err != nil {
		logger.Error().Err(err).Str("event_id", req.EventID).Msg("failed to bulk mark attendance")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAttendanceRecordsDomainToApi(records))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	stats, err := h.store.Statistics(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute attendance statistics")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapAttendanceStatsDomainToApi(stats))
}

// Export streams the filtered records as CSV for the admin export button.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !h.checker.Can(ctx, access.ResourceAttendance, access.ActionExport) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	records, err := h.store.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to export attendance records")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "event", "person", "status", "check_in", "check_out", "notes"})
	for _, rec := range records {
		var event, person, checkIn, checkOut string
		if rec.Event != nil {
			event = rec.Event.Name
		}
		if rec.Person != nil {
			person = rec.Person.FirstName + " " + rec.Person.LastName
		}
		if rec.CheckInTime != nil {
			checkIn = rec.CheckInTime.Format(time.RFC3339)
		}
		if rec.CheckOutTime != nil {
			checkOut = rec.CheckOutTime.Format(time.RFC3339)
		}
		_ = cw.Write([]string{rec.ID, event, person, string(rec.Status), checkIn, checkOut, rec.Notes})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error().Err(err).Msg("failed to write attendance csv")
	}
}

func parseFilter(w http.ResponseWriter, r *http.Request) (domain.AttendanceFilter, bool) {
	q := r.URL.Query()
	filter := domain.AttendanceFilter{
		EventID:  q.Get("eventId"),
		PersonID: q.Get("personId"),
		Status:   domain.AttendanceStatus(q.Get("status")),
		TenantID: q.Get("tenantId"),
		Search:   q.Get("search"),
	}

	if from := q.Get("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			http.Error(w, "invalid 'from' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return domain.AttendanceFilter{}, false
		}
		filter.DateFrom = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			http.Error(w, "invalid 'to' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return domain.AttendanceFilter{}, false
		}
		filter.DateTo = &t
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
