package evaluationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/evaluation"
	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/weights"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *evaluation.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationRead, h.Perms)).Get("/cycles", h.handleListCycles)
		r.With(middleware.RequirePermission(auth.PermEvaluationWrite, h.Perms)).Post("/cycles", h.handleCreateCycle)
		r.With(middleware.RequirePermission(auth.PermEvaluationWrite, h.Perms)).Post("/cycles/{cycleID}/activate", h.handleActivateCycle)
		r.With(middleware.RequirePermission(auth.PermEvaluationClose, h.Perms)).Post("/cycles/{cycleID}/close", h.handleCloseCycle)
		r.With(middleware.RequirePermission(auth.PermEvaluationRead, h.Perms)).Get("/cycles/{cycleID}", h.handleListEvaluations)
		r.With(middleware.RequirePermission(auth.PermEvaluationWrite, h.Perms)).Post("/cycles/{cycleID}/employees/{employeeID}", h.handleOpen)
		r.With(middleware.RequirePermission(auth.PermEvaluationRead, h.Perms)).Get("/cycles/{cycleID}/employees/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEvaluationWrite, h.Perms)).Put("/{evaluationID}/scores", h.handleSetSubScore)
		r.With(middleware.RequirePermission(auth.PermEvaluationClose, h.Perms)).Post("/cycles/{cycleID}/employees/{employeeID}/finalize", h.handleFinalize)
	})
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cycles, err := h.Service.ListCycles(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_list_failed", "failed to list evaluation cycles", reqID)
		return
	}
	api.Success(w, cycles, reqID)
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("type", payload.Type, []string{evaluation.CycleTypeSelf, evaluation.CycleTypeManager, evaluation.CycleTypeThreeSixty}, "type must be self, manager or 360")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), evaluation.Cycle{
		TenantID:  user.TenantID,
		Name:      payload.Name,
		Type:      payload.Type,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		if errors.Is(err, evaluation.ErrInvalidCycle) {
			api.Fail(w, http.StatusBadRequest, "invalid_cycle", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create evaluation cycle", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "evaluation_cycle", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleActivateCycle(w http.ResponseWriter, r *http.Request) {
	h.handleCycleTransition(w, r, true)
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	h.handleCycleTransition(w, r, false)
}

func (h *Handler) handleCycleTransition(w http.ResponseWriter, r *http.Request, activate bool) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	var err error
	action := audit.ActionActivate
	if activate {
		err = h.Service.ActivateCycle(r.Context(), user.TenantID, cycleID)
	} else {
		err = h.Service.CloseCycle(r.Context(), user.TenantID, cycleID)
		action = audit.ActionFinalize
	}
	if err != nil {
		if errors.Is(err, evaluation.ErrCycleNotActive) {
			api.Fail(w, http.StatusConflict, "invalid_cycle_state", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "cycle_transition_failed", "failed to change cycle status", reqID)
		return
	}

	h.record(r, user, action, "evaluation_cycle", cycleID, nil)
	api.Success(w, map[string]string{"id": cycleID}, reqID)
}

func (h *Handler) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	list, err := h.Service.List(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	id, err := h.Service.Open(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, evaluation.ErrCycleNotActive) {
			api.Fail(w, http.StatusConflict, "cycle_not_active", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evaluation_open_failed", "failed to open evaluation", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "evaluation", id, nil)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	ev, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", reqID)
		return
	}
	api.Success(w, ev, reqID)
}

func (h *Handler) handleSetSubScore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Category string  `json:"category"`
		Score    float64 `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	evaluationID := chi.URLParam(r, "evaluationID")
	if err := h.Service.SetSubScore(r.Context(), user.TenantID, evaluationID, scoring.Category(payload.Category), payload.Score); err != nil {
		if errors.Is(err, evaluation.ErrInvalidSubScore) {
			api.Fail(w, http.StatusBadRequest, "invalid_score", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "score_update_failed", "failed to record sub-score", reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, "evaluation", evaluationID, payload)
	api.Success(w, map[string]string{"id": evaluationID}, reqID)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	ev, err := h.Service.Finalize(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, weights.ErrNoActive) {
			api.Fail(w, http.StatusConflict, "weights_unresolved", "no active weight configuration applies to employee", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "finalize_failed", "failed to finalize evaluation", reqID)
		return
	}

	h.record(r, user, audit.ActionFinalize, "evaluation", ev.ID, map[string]any{"composite": ev.CompositeScore})
	api.Success(w, ev, reqID)
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, entityType, id string, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, entityType, id, reqID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit evaluation failed", "action", action, "err", err)
	}
}
