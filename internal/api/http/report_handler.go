package http

import (
	"net/http"
	"strconv"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func (h *ReportHandler) ActiveLoans(w http.ResponseWriter, r *http.Request) {
	start, ok := queryDate(w, r, "start", false)
	if !ok {
		return
	}
	end, ok := queryDate(w, r, "end", false)
	if !ok {
		return
	}

	loans, err := h.svc.ActiveLoans(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *ReportHandler) ClientsWithOverdues(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ClientsWithOverdues(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ReportHandler) MostLoanedTools(w http.ResponseWriter, r *http.Request) {
	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			writeError(w, domain.InvalidRequest("limit must be a positive integer"))
			return
		}
		limit = int32(parsed)
	}
	start, ok := queryDate(w, r, "start", false)
	if !ok {
		return
	}
	end, ok := queryDate(w, r, "end", false)
	if !ok {
		return
	}

	rankings, err := h.svc.MostLoanedTools(r.Context(), limit, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}
