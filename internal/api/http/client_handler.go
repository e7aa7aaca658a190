package http

import (
	"net/http"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

type ClientHandler struct {
	svc service.ClientService
}

type createClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Rut   string `json:"rut" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"required,email"`
}

type updateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type setClientStateRequest struct {
	State string `json:"state" validate:"required"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	client := &domain.Client{
		Name:  req.Name,
		Rut:   req.Rut,
		Phone: req.Phone,
		Email: req.Email,
	}
	client, err := h.svc.Create(r.Context(), client)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	client, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateClientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	client, err := h.svc.Update(r.Context(), id, req.Name, req.Phone, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) SetState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req setClientStateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	client, err := h.svc.SetState(r.Context(), id, domain.ClientState(req.State))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}
