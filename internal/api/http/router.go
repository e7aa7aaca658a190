package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"toolrent-backend/internal/security"
	"toolrent-backend/internal/service"
)

var validate = validator.New()

// Services bundles everything the HTTP layer exposes.
type Services struct {
	Loans   service.LoanService
	Tools   service.ToolService
	Clients service.ClientService
	Kardex  service.KardexService
	Rates   service.RateService
	Reports service.ReportService
}

// NewRouter wires all handlers under /api/v1.
func NewRouter(svcs Services, resolver *security.IdentityResolver) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(identityMiddleware(resolver))

	api := r.PathPrefix("/api/v1").Subrouter()

	loans := &LoanHandler{svc: svcs.Loans}
	api.HandleFunc("/loans", loans.Create).Methods(http.MethodPost)
	api.HandleFunc("/loans", loans.List).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/return", loans.Return).Methods(http.MethodPut)

	tools := &ToolHandler{svc: svcs.Tools}
	api.HandleFunc("/tools", tools.Register).Methods(http.MethodPost)
	api.HandleFunc("/tools", tools.List).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}", tools.Get).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}/decommission", tools.Decommission).Methods(http.MethodPut)

	clients := &ClientHandler{svc: svcs.Clients}
	api.HandleFunc("/clients", clients.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients", clients.List).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", clients.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", clients.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id}/state", clients.SetState).Methods(http.MethodPut)

	kardex := &KardexHandler{svc: svcs.Kardex}
	api.HandleFunc("/kardex", kardex.List).Methods(http.MethodGet)
	api.HandleFunc("/kardex/tool/{toolId}", kardex.ListByTool).Methods(http.MethodGet)
	api.HandleFunc("/kardex/date-range", kardex.ListByDateRange).Methods(http.MethodGet)
	api.HandleFunc("/kardex/type/{type}", kardex.ListByType).Methods(http.MethodGet)

	rates := &RateHandler{svc: svcs.Rates}
	api.HandleFunc("/config", rates.List).Methods(http.MethodGet)
	api.HandleFunc("/config/{key}", rates.Get).Methods(http.MethodGet)
	api.HandleFunc("/config/{key}", rates.Set).Methods(http.MethodPut)

	reports := &ReportHandler{svc: svcs.Reports}
	api.HandleFunc("/reports/active-loans", reports.ActiveLoans).Methods(http.MethodGet)
	api.HandleFunc("/reports/clients-with-overdues", reports.ClientsWithOverdues).Methods(http.MethodGet)
	api.HandleFunc("/reports/most-loaned-tools", reports.MostLoanedTools).Methods(http.MethodGet)

	return r
}
