package pdihandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/pdi"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *pdi.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *pdi.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pdi", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPDIRead, h.Perms)).Get("/actions", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPDIWrite, h.Perms)).Post("/actions", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermPDIWrite, h.Perms)).Put("/actions/{actionID}/status", h.handleUpdateStatus)
		r.With(middleware.RequirePermission(auth.PermPDIRead, h.Perms)).Get("/employees/{employeeID}/summary", h.handleSummary)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	actions, err := h.Service.ListByEmployee(r.Context(), user.TenantID, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdi_list_failed", "failed to list development actions", reqID)
		return
	}
	api.Success(w, actions, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		EmployeeID   string `json:"employeeId"`
		CompetencyID string `json:"competencyId"`
		Title        string `json:"title"`
		ActionType   string `json:"actionType"`
		DueDate      string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id required")
	v.Required("title", payload.Title, "title is required")
	dueDate, _ := v.Date("dueDate", payload.DueDate)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Create(r.Context(), pdi.Action{
		TenantID:     user.TenantID,
		EmployeeID:   payload.EmployeeID,
		CompetencyID: payload.CompetencyID,
		Title:        payload.Title,
		ActionType:   payload.ActionType,
		DueDate:      dueDate,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdi_create_failed", "failed to create development action", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, []string{pdi.ActionStatusOpen, pdi.ActionStatusInProgress, pdi.ActionStatusDone}, "status must be open, in_progress or done")
	v.Required("status", payload.Status, "status is required")
	if v.Reject(w, reqID) {
		return
	}

	actionID := chi.URLParam(r, "actionID")
	if err := h.Service.UpdateStatus(r.Context(), user.TenantID, actionID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdi_update_failed", "failed to update action status", reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, actionID, payload)
	api.Success(w, map[string]string{"id": actionID}, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	summary, err := h.Service.Summary(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdi_summary_failed", "failed to compute plan summary", reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, id string, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, "pdi_action", id, reqID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit pdi failed", "action", action, "err", err)
	}
}
