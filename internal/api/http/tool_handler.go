package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

type ToolHandler struct {
	svc service.ToolService
}

type registerToolRequest struct {
	Name             string          `json:"name" validate:"required"`
	Category         string          `json:"category"`
	Stock            int32           `json:"stock" validate:"gte=0"`
	ReplacementValue decimal.Decimal `json:"replacement_value" validate:"required"`
}

func (h *ToolHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerToolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tool := &domain.Tool{
		Name:             req.Name,
		Category:         req.Category,
		Stock:            req.Stock,
		ReplacementValue: req.ReplacementValue,
	}
	tool, err := h.svc.Register(r.Context(), tool, UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tool)
}

func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tool, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	tools, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tools)
}

func (h *ToolHandler) Decommission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tool, err := h.svc.Decommission(r.Context(), id, UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}
