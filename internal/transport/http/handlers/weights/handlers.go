package weightshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/weights"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *weights.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *weights.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/weights", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermWeightsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermWeightsRead, h.Perms)).Get("/{configID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermWeightsWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermWeightsWrite, h.Perms)).Put("/{configID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermWeightsWrite, h.Perms)).Post("/{configID}/activate", h.handleActivate)
		r.With(middleware.RequirePermission(auth.PermWeightsWrite, h.Perms)).Post("/{configID}/deactivate", h.handleDeactivate)
		r.With(middleware.RequirePermission(auth.PermWeightsRead, h.Perms)).Get("/resolve", h.handleResolve)
	})
}

type configPayload struct {
	Name     string                   `json:"name"`
	Scope    string                   `json:"scope"`
	ScopeRef string                   `json:"scopeRef"`
	Weights  map[scoring.Category]int `json:"weights"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	configs, err := h.Service.List(r.Context(), user.TenantID, r.URL.Query().Get("scope"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "weights_list_failed", "failed to list weight configurations", reqID)
		return
	}
	api.Success(w, configs, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cfg, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "configID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "weights_not_found", "weight configuration not found", reqID)
		return
	}
	api.Success(w, cfg, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload configPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("scope", payload.Scope, []string{weights.ScopeGlobal, weights.ScopeDepartment, weights.ScopePosition}, "scope must be global, department or position")
	if payload.Scope != weights.ScopeGlobal {
		v.Required("scopeRef", payload.ScopeRef, "scopeRef is required for non-global scopes")
	}
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Create(r.Context(), weights.Configuration{
		TenantID: user.TenantID,
		Name:     payload.Name,
		Scope:    payload.Scope,
		ScopeRef: payload.ScopeRef,
		Weights:  payload.Weights,
	})
	if err != nil {
		h.failWeights(w, err, reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, id, nil, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload configPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	configID := chi.URLParam(r, "configID")
	before, err := h.Service.Get(r.Context(), user.TenantID, configID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "weights_not_found", "weight configuration not found", reqID)
		return
	}

	if err := h.Service.Update(r.Context(), weights.Configuration{
		ID:       configID,
		TenantID: user.TenantID,
		Name:     payload.Name,
		Scope:    payload.Scope,
		ScopeRef: payload.ScopeRef,
		Weights:  payload.Weights,
	}); err != nil {
		h.failWeights(w, err, reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, configID, before, payload)
	api.Success(w, map[string]string{"id": configID}, reqID)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, true)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, false)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request, active bool) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	configID := chi.URLParam(r, "configID")
	var err error
	if active {
		err = h.Service.Activate(r.Context(), user.TenantID, configID)
	} else {
		err = h.Service.Deactivate(r.Context(), user.TenantID, configID)
	}
	if err != nil {
		h.failWeights(w, err, reqID)
		return
	}

	h.record(r, user, audit.ActionActivate, configID, nil, map[string]bool{"active": active})
	api.Success(w, map[string]bool{"active": active}, reqID)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cfg, err := h.Service.ResolveFor(r.Context(), user.TenantID, weights.Subject{
		DepartmentID: r.URL.Query().Get("departmentId"),
		PositionID:   r.URL.Query().Get("positionId"),
	})
	if err != nil {
		if errors.Is(err, weights.ErrNoActive) {
			api.Fail(w, http.StatusNotFound, "weights_unresolved", "no active weight configuration matches", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "weights_resolve_failed", "failed to resolve weight configuration", reqID)
		return
	}
	api.Success(w, cfg, reqID)
}

func (h *Handler) failWeights(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, scoring.ErrInvalidWeights), errors.Is(err, weights.ErrInvalidScope):
		api.Fail(w, http.StatusBadRequest, "invalid_weights", err.Error(), reqID)
	case errors.Is(err, weights.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "weights_not_found", "weight configuration not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "weights_failed", "weight configuration operation failed", reqID)
	}
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, id string, before, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, "weight_configuration", id, reqID, shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit weight_configuration failed", "action", action, "err", err)
	}
}
