package staffhandler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/reports"
	"staffdesk/internal/domain/staff"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *staff.Store
}

func NewHandler(store *staff.Store) *Handler {
	return &Handler{Store: store}
}

type listResponse struct {
	Items    []staff.Employee `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type deleteResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export.pdf", h.handleExport)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	window := shared.ParsePageWindow(r, shared.DefaultPageSize, shared.MaxPageSize)
	filtered := reports.Filter(h.Store.List(), r.URL.Query().Get("q"))

	api.Success(w, listResponse{
		Items:    reports.Paginate(filtered, window.Page, window.Size),
		Total:    len(filtered),
		Page:     window.Page,
		PageSize: window.Size,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filtered := reports.Filter(h.Store.List(), r.URL.Query().Get("q"))

	var buf bytes.Buffer
	if err := reports.WriteDirectoryPDF(&buf, filtered, h.Store.Now()); err != nil {
		slog.Error("directory export failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, api.CodeExportFailed, "failed to render directory", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write directory export failed", "err", err, "requestId", requestID)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := employeeID(w, r, requestID)
	if !ok {
		return
	}
	e, found := h.Store.Get(id)
	if !found {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", requestID)
		return
	}
	api.Success(w, e, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	form, ok := decodeForm(w, r, requestID)
	if !ok {
		return
	}
	e := h.Store.Insert(form)
	slog.Info("employee created", "employeeId", e.ID, "requestId", requestID, "actor", middleware.GetActor(r.Context()))
	api.Created(w, e, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := employeeID(w, r, requestID)
	if !ok {
		return
	}
	form, ok := decodeForm(w, r, requestID)
	if !ok {
		return
	}
	existing, found := h.Store.Get(id)
	if !found {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", requestID)
		return
	}

	updated := staff.BuildEmployee(form, &existing, h.Store.Now())
	if !h.Store.Update(updated) {
		api.Fail(w, http.StatusNotFound, api.CodeNotFound, "employee not found", requestID)
		return
	}
	slog.Info("employee updated", "employeeId", id, "requestId", requestID, "actor", middleware.GetActor(r.Context()))
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := employeeID(w, r, requestID)
	if !ok {
		return
	}
	deleted := h.Store.Delete(id)
	if deleted {
		slog.Info("employee deleted", "employeeId", id, "requestId", requestID, "actor", middleware.GetActor(r.Context()))
	}
	api.Success(w, deleteResponse{ID: id, Deleted: deleted}, requestID)
}

func employeeID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidID, "employee id must be an integer", requestID)
		return 0, false
	}
	return id, true
}

func decodeForm(w http.ResponseWriter, r *http.Request, requestID string) (staff.EmployeeForm, bool) {
	var form staff.EmployeeForm
	if !shared.DecodeJSON(w, r, requestID, &form) {
		return form, false
	}
	form = form.Normalize()
	if shared.Reject(w, requestID, form.Validate()) {
		return form, false
	}
	return form, true
}
