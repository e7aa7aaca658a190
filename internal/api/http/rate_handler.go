package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"toolrent-backend/internal/service"
)

type RateHandler struct {
	svc service.RateService
}

type setRateRequest struct {
	Value decimal.Decimal `json:"value"`
}

func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rate, err := h.svc.Set(r.Context(), mux.Vars(r)["key"], req.Value, UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}
