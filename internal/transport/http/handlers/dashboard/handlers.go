package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/reports"
	"staffdesk/internal/domain/staff"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
)

type Handler struct {
	Store *staff.Store
}

func NewHandler(store *staff.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	api.Success(w, reports.BuildDashboard(h.Store.List()), middleware.GetRequestID(r.Context()))
}
