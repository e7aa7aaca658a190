package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"
)

type LoanHandler struct {
	svc service.LoanService
}

type createLoanRequest struct {
	ClientID int32  `json:"client_id" validate:"required,gt=0"`
	ToolID   int32  `json:"tool_id" validate:"required,gt=0"`
	DueDate  string `json:"due_date" validate:"required"`
}

type returnLoanRequest struct {
	Damaged     bool `json:"damaged"`
	Irreparable bool `json:"irreparable"`
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeError(w, domain.InvalidRequest("due_date must be formatted as yyyy-mm-dd"))
		return
	}

	loan, err := h.svc.CreateLoan(r.Context(), req.ClientID, req.ToolID, dueDate, UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req returnLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loan, err := h.svc.ReturnTool(r.Context(), id, req.Damaged, req.Irreparable, UsernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// pathID parses a positive int32 path variable, writing the error response
// itself when parsing fails.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeError(w, domain.InvalidRequest("invalid %s: %q", name, raw))
		return 0, false
	}
	return int32(id), true
}
