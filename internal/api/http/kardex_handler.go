package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

type KardexHandler struct {
	svc service.KardexService
}

func (h *KardexHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) ListByTool(w http.ResponseWriter, r *http.Request) {
	toolID, ok := pathID(w, r, "toolId")
	if !ok {
		return
	}
	entries, err := h.svc.GetByTool(r.Context(), toolID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	start, ok := queryDate(w, r, "start", true)
	if !ok {
		return
	}
	end, ok := queryDate(w, r, "end", true)
	if !ok {
		return
	}

	entries, err := h.svc.GetByDateRange(r.Context(), *start, *end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *KardexHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	movementType := domain.MovementType(mux.Vars(r)["type"])
	entries, err := h.svc.GetByType(r.Context(), movementType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// queryDate parses a yyyy-mm-dd query parameter. Missing optional parameters
// return a nil date with ok set.
func queryDate(w http.ResponseWriter, r *http.Request, name string, required bool) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			writeError(w, domain.InvalidRequest("missing required query parameter %q", name))
			return nil, false
		}
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, domain.InvalidRequest("%s must be formatted as yyyy-mm-dd", name))
		return nil, false
	}
	return &t, true
}
