package goalshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/core"
	"perfhub/internal/domain/goals"
	"perfhub/internal/domain/notifications"
	"perfhub/internal/domain/workflow"
	"perfhub/internal/platform/metrics"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *goals.Service
	Core    *core.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
	Metrics *metrics.Metrics
}

func NewHandler(service *goals.Service, coreSvc *core.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, m *metrics.Metrics) *Handler {
	return &Handler{Service: service, Core: coreSvc, Perms: perms, Notify: notify, Audit: auditSvc, Metrics: m}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/{goalID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Put("/{goalID}/progress", h.handleUpdateProgress)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Put("/{goalID}/weight", h.handleUpdateWeight)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/{goalID}/submit", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermGoalsApprove, h.Perms)).Post("/{goalID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermGoalsApprove, h.Perms)).Post("/{goalID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/{goalID}/duplicate", h.handleDuplicate)
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/{goalID}/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/departments/{departmentID}/rollup", h.handleDepartmentRollup)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID := ""
	managerID := ""
	switch user.RoleName {
	case auth.RoleEmployee:
		id, err := h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
		if err != nil {
			slog.Warn("goal list employee lookup failed", "err", err)
		} else {
			employeeID = id
		}
	case auth.RoleManager:
		id, err := h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
		if err != nil {
			slog.Warn("goal list manager lookup failed", "err", err)
		} else {
			managerID = id
		}
	}

	list, err := h.Service.List(r.Context(), user.TenantID, employeeID, managerID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_list_failed", "failed to list goals", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	goal, err := h.Service.Get(r.Context(), user.TenantID, chi.URLParam(r, "goalID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", reqID)
		return
	}
	api.Success(w, goal, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		EmployeeID   string  `json:"employeeId"`
		ManagerID    string  `json:"managerId"`
		DepartmentID string  `json:"departmentId"`
		ParentGoalID string  `json:"parentGoalId"`
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		Metric       string  `json:"metric"`
		DueDate      string  `json:"dueDate"`
		Weight       int     `json:"weight"`
		TargetValue  float64 `json:"targetValue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if payload.EmployeeID == "" {
		if id, err := h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID); err == nil {
			payload.EmployeeID = id
		}
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id required")
	v.Required("title", payload.Title, "title is required")
	dueDate, _ := v.Date("dueDate", payload.DueDate)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Create(r.Context(), goals.Goal{
		TenantID:     user.TenantID,
		EmployeeID:   payload.EmployeeID,
		ManagerID:    payload.ManagerID,
		DepartmentID: payload.DepartmentID,
		ParentGoalID: payload.ParentGoalID,
		Title:        payload.Title,
		Description:  payload.Description,
		Metric:       payload.Metric,
		DueDate:      dueDate,
		Weight:       payload.Weight,
		TargetValue:  payload.TargetValue,
	})
	if err != nil {
		if errors.Is(err, goals.ErrInvalidWeight) || errors.Is(err, goals.ErrInvalidTarget) {
			api.Fail(w, http.StatusBadRequest, "invalid_goal", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, id, nil, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		CurrentValue float64 `json:"currentValue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.UpdateProgress(r.Context(), user.TenantID, goalID, payload.CurrentValue); err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_update_failed", "failed to update goal progress", reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, goalID, nil, payload)
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

func (h *Handler) handleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Weight int `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.UpdateWeight(r.Context(), user.TenantID, goalID, payload.Weight); err != nil {
		if errors.Is(err, goals.ErrInvalidWeight) {
			api.Fail(w, http.StatusBadRequest, "invalid_goal", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "goal_update_failed", "failed to update goal weight", reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, goalID, nil, payload)
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	rec, err := h.Service.Submit(r.Context(), user.TenantID, goalID, workflow.Actor{ID: user.UserID, Role: user.RoleName})
	if err != nil {
		h.failWorkflow(w, err, reqID)
		return
	}

	h.afterDecision(r, user, rec)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, true)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, false)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, approve bool) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	actor := workflow.Actor{ID: user.UserID, Role: user.RoleName}

	var rec workflow.ApprovalRecord
	var err error
	if approve {
		rec, err = h.Service.Approve(r.Context(), user.TenantID, goalID, actor, payload.Comments)
	} else {
		rec, err = h.Service.Reject(r.Context(), user.TenantID, goalID, actor, payload.Comments)
	}
	if err != nil {
		h.failWorkflow(w, err, reqID)
		return
	}

	h.afterDecision(r, user, rec)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	id, err := h.Service.Duplicate(r.Context(), user.TenantID, goalID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_duplicate_failed", "failed to duplicate goal", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, id, nil, map[string]string{"duplicatedFrom": goalID})
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	records, err := h.Service.History(r.Context(), chi.URLParam(r, "goalID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_history_failed", "failed to load approval history", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleDepartmentRollup(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	rollup, err := h.Service.DepartmentRollup(r.Context(), user.TenantID, chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_rollup_failed", "failed to compute department rollup", reqID)
		return
	}
	api.Success(w, rollup, reqID)
}

// afterDecision fans out the bookkeeping every workflow decision needs:
// metrics, audit trail, and a notification for the goal's owner.
func (h *Handler) afterDecision(r *http.Request, user auth.UserContext, rec workflow.ApprovalRecord) {
	reqID := middleware.GetRequestID(r.Context())

	if h.Metrics != nil {
		h.Metrics.WorkflowDecisions.WithLabelValues(rec.Kind, rec.Decision).Inc()
	}
	if h.Audit != nil {
		if err := h.Audit.RecordDecision(r.Context(), user.TenantID, reqID, shared.ClientIP(r), rec); err != nil {
			slog.Warn("audit goal decision failed", "err", err)
		}
	}
	if h.Notify == nil || rec.Decision == workflow.DecisionSubmitted {
		return
	}

	goal, err := h.Service.Get(r.Context(), user.TenantID, rec.SubjectID)
	if err != nil {
		slog.Warn("goal decision notify lookup failed", "err", err)
		return
	}
	ownerUserID, err := h.Core.UserIDByEmployeeID(r.Context(), user.TenantID, goal.EmployeeID)
	if err != nil || ownerUserID == "" {
		return
	}
	if err := h.Notify.Notify(r.Context(), user.TenantID, ownerUserID, notifications.FromDecision(rec, goal.Title)); err != nil {
		slog.Warn("goal decision notify failed", "err", err)
	}
}

func (h *Handler) failWorkflow(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, workflow.ErrSubjectNotFound):
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", reqID)
	case errors.Is(err, workflow.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	case errors.Is(err, workflow.ErrVersionConflict):
		api.Fail(w, http.StatusConflict, "version_conflict", "goal was modified concurrently, retry", reqID)
	case errors.Is(err, workflow.ErrNotAuthorized):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, workflow.ErrCommentTooShort):
		api.Fail(w, http.StatusBadRequest, "comment_too_short", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "workflow_failed", "workflow operation failed", reqID)
	}
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, id string, before, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, "goal", id, reqID, shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit goal failed", "action", action, "err", err)
	}
}
