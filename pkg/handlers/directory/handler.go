// Package directory serves the person/event lookup tables that populate the
// admin form selects.
package directory

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cm-tools/church-admin/pkg/adapters"
	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
)

type Handler struct {
	store directory.Store
}

func NewHandler(store directory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	people, err := h.store.People(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list people")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	response := make([]api.Person, 0, len(people))
	for _, p := range people {
		response = append(response, adapters.MapPersonDomainToApi(p))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode people")
	}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	events, err := h.store.Events(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list events")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	response := make([]api.Event, 0, len(events))
	for _, e := range events {
		response = append(response, adapters.MapEventDomainToApi(e))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode events")
	}
}
