package bonushandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/bonus"
	"perfhub/internal/domain/core"
	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/workflow"
	"perfhub/internal/platform/metrics"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *bonus.Service
	Core    *core.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Metrics
}

func NewHandler(service *bonus.Service, coreSvc *core.Service, perms middleware.PermissionStore, auditSvc *audit.Service, m *metrics.Metrics) *Handler {
	return &Handler{Service: service, Core: coreSvc, Perms: perms, Audit: auditSvc, Metrics: m}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bonus", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/policies", h.handleListPolicies)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/policies/{policyID}", h.handleGetPolicy)
		r.With(middleware.RequirePermission(auth.PermBonusWrite, h.Perms)).Post("/policies", h.handleCreatePolicy)
		r.With(middleware.RequirePermission(auth.PermBonusWrite, h.Perms)).Post("/policies/{policyID}/submit", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermBonusApprove, h.Perms)).Post("/policies/{policyID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermBonusApprove, h.Perms)).Post("/policies/{policyID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/policies/{policyID}/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermBonusWrite, h.Perms)).Post("/calculations", h.handleCalculate)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/calculations", h.handleListCalculations)
	})
}

func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	policies, err := h.Service.ListPolicies(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "policy_list_failed", "failed to list bonus policies", reqID)
		return
	}
	api.Success(w, policies, reqID)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	policy, err := h.Service.GetPolicy(r.Context(), user.TenantID, chi.URLParam(r, "policyID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "policy_not_found", "bonus policy not found", reqID)
		return
	}
	api.Success(w, policy, reqID)
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Name    string                   `json:"name"`
		Weights map[scoring.Category]int `json:"weights"`
		Bands   []bonus.Band             `json:"bands"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if len(payload.Bands) == 0 {
		v.Add("bands", "at least one band is required")
	}
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreatePolicy(r.Context(), bonus.Policy{
		TenantID: user.TenantID,
		Name:     payload.Name,
		Weights:  payload.Weights,
		Bands:    payload.Bands,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidWeights) || errors.Is(err, bonus.ErrInvalidBand) {
			api.Fail(w, http.StatusBadRequest, "invalid_policy", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "policy_create_failed", "failed to create bonus policy", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "bonus_policy", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	rec, err := h.Service.SubmitPolicy(r.Context(), user.TenantID, chi.URLParam(r, "policyID"), workflow.Actor{ID: user.UserID, Role: user.RoleName})
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

	policyID := chi.URLParam(r, "policyID")
	actor := workflow.Actor{ID: user.UserID, Role: user.RoleName}

	var rec workflow.ApprovalRecord
	var err error
	if approve {
		rec, err = h.Service.ApprovePolicy(r.Context(), user.TenantID, policyID, actor, payload.Comments)
	} else {
		rec, err = h.Service.RejectPolicy(r.Context(), user.TenantID, policyID, actor, payload.Comments)
	}
	if err != nil {
		h.failWorkflow(w, err, reqID)
		return
	}

	h.afterDecision(r, user, rec)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	records, err := h.Service.PolicyHistory(r.Context(), chi.URLParam(r, "policyID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "policy_history_failed", "failed to load approval history", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		EmployeeID string                       `json:"employeeId"`
		BaseSalary float64                      `json:"baseSalary"`
		Inputs     map[scoring.Category]float64 `json:"inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id required")
	if v.Reject(w, reqID) {
		return
	}

	// Base salary defaults to the employee record when omitted.
	if payload.BaseSalary <= 0 {
		employee, err := h.Core.GetEmployee(r.Context(), user.TenantID, payload.EmployeeID)
		if err != nil {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		payload.BaseSalary = employee.BaseSalary
	}

	calc, err := h.Service.Calculate(r.Context(), user.TenantID, payload.EmployeeID, payload.BaseSalary, payload.Inputs)
	if err != nil {
		if errors.Is(err, bonus.ErrPolicyNotApproved) || errors.Is(err, bonus.ErrPolicyNotFound) {
			api.Fail(w, http.StatusConflict, "no_approved_policy", "no approved bonus policy available", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "calculation_failed", "failed to calculate bonus", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "bonus_calculation", calc.ID, calc)
	api.Created(w, calc, reqID)
}

func (h *Handler) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	calcs, err := h.Service.ListCalculations(r.Context(), user.TenantID, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calculation_list_failed", "failed to list bonus calculations", reqID)
		return
	}
	api.Success(w, calcs, reqID)
}

func (h *Handler) afterDecision(r *http.Request, user auth.UserContext, rec workflow.ApprovalRecord) {
	if h.Metrics != nil {
		h.Metrics.WorkflowDecisions.WithLabelValues(rec.Kind, rec.Decision).Inc()
	}
	if h.Audit != nil {
		reqID := middleware.GetRequestID(r.Context())
		if err := h.Audit.RecordDecision(r.Context(), user.TenantID, reqID, shared.ClientIP(r), rec); err != nil {
			slog.Warn("audit bonus decision failed", "err", err)
		}
	}
}

func (h *Handler) failWorkflow(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, workflow.ErrSubjectNotFound):
		api.Fail(w, http.StatusNotFound, "policy_not_found", "bonus policy not found", reqID)
	case errors.Is(err, workflow.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	case errors.Is(err, workflow.ErrVersionConflict):
		api.Fail(w, http.StatusConflict, "version_conflict", "policy was modified concurrently, retry", reqID)
	case errors.Is(err, workflow.ErrNotAuthorized):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, workflow.ErrCommentTooShort):
		api.Fail(w, http.StatusBadRequest, "comment_too_short", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "workflow_failed", "workflow operation failed", reqID)
	}
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, entityType, id string, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, entityType, id, reqID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit bonus failed", "action", action, "err", err)
	}
}
