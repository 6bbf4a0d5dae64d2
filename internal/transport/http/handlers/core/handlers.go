package corehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/core"
	"perfhub/internal/domain/workflow"
	"perfhub/internal/platform/metrics"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Metrics
}

func NewHandler(service *core.Service, perms middleware.PermissionStore, auditSvc *audit.Service, m *metrics.Metrics) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Metrics: m}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/core", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/employees", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/employees/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/employees", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/departments", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/positions", h.handleListPositions)

		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/job-descriptions", h.handleListJobDescriptions)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/job-descriptions", h.handleCreateJobDescription)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/job-descriptions/{jdID}/submit", h.handleSubmitJD)
		r.With(middleware.RequirePermission(auth.PermWorkflowDecide, h.Perms)).Post("/job-descriptions/{jdID}/approve", h.handleApproveJD)
		r.With(middleware.RequirePermission(auth.PermWorkflowDecide, h.Perms)).Post("/job-descriptions/{jdID}/reject", h.handleRejectJD)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/job-descriptions/{jdID}/duplicate", h.handleDuplicateJD)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/job-descriptions/{jdID}/history", h.handleJDHistory)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context(), user.TenantID, r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employee, err := h.Service.GetEmployee(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		UserID       string  `json:"userId"`
		FirstName    string  `json:"firstName"`
		LastName     string  `json:"lastName"`
		Email        string  `json:"email"`
		DepartmentID string  `json:"departmentId"`
		PositionID   string  `json:"positionId"`
		ManagerID    string  `json:"managerId"`
		BaseSalary   float64 `json:"baseSalary"`
		HiredAt      string  `json:"hiredAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	hiredAt, _ := v.Date("hiredAt", payload.HiredAt)
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), core.Employee{
		TenantID:     user.TenantID,
		UserID:       payload.UserID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		DepartmentID: payload.DepartmentID,
		PositionID:   payload.PositionID,
		ManagerID:    payload.ManagerID,
		BaseSalary:   payload.BaseSalary,
		HiredAt:      hiredAt,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "employee", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	departments, err := h.Service.ListDepartments(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	positions, err := h.Service.ListPositions(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", reqID)
		return
	}
	api.Success(w, positions, reqID)
}

func (h *Handler) handleListJobDescriptions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	jds, err := h.Service.ListJobDescriptions(r.Context(), user.TenantID, r.URL.Query().Get("positionId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jd_list_failed", "failed to list job descriptions", reqID)
		return
	}
	api.Success(w, jds, reqID)
}

func (h *Handler) handleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		PositionID       string `json:"positionId"`
		Summary          string `json:"summary"`
		Responsibilities string `json:"responsibilities"`
		Requirements     string `json:"requirements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("positionId", payload.PositionID, "position id required")
	v.Required("summary", payload.Summary, "summary is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateJobDescription(r.Context(), core.JobDescription{
		TenantID:         user.TenantID,
		PositionID:       payload.PositionID,
		Summary:          payload.Summary,
		Responsibilities: payload.Responsibilities,
		Requirements:     payload.Requirements,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jd_create_failed", "failed to create job description", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "job_description", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleSubmitJD(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	rec, err := h.Service.SubmitJobDescription(r.Context(), user.TenantID, chi.URLParam(r, "jdID"), workflow.Actor{ID: user.UserID, Role: user.RoleName})
	if err != nil {
		h.failWorkflow(w, err, reqID)
		return
	}

	h.afterDecision(r, user, rec)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleApproveJD(w http.ResponseWriter, r *http.Request) {
	h.handleJDDecision(w, r, true)
}

func (h *Handler) handleRejectJD(w http.ResponseWriter, r *http.Request) {
	h.handleJDDecision(w, r, false)
}

func (h *Handler) handleJDDecision(w http.ResponseWriter, r *http.Request, approve bool) {
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

	jdID := chi.URLParam(r, "jdID")
	actor := workflow.Actor{ID: user.UserID, Role: user.RoleName}

	var rec workflow.ApprovalRecord
	var err error
	if approve {
		rec, err = h.Service.ApproveJobDescription(r.Context(), user.TenantID, jdID, actor, payload.Comments)
	} else {
		rec, err = h.Service.RejectJobDescription(r.Context(), user.TenantID, jdID, actor, payload.Comments)
	}
	if err != nil {
		h.failWorkflow(w, err, reqID)
		return
	}

	h.afterDecision(r, user, rec)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleDuplicateJD(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	jdID := chi.URLParam(r, "jdID")
	id, err := h.Service.DuplicateJobDescription(r.Context(), user.TenantID, jdID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jd_duplicate_failed", "failed to duplicate job description", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "job_description", id, map[string]string{"duplicatedFrom": jdID})
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleJDHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	records, err := h.Service.JobDescriptionHistory(r.Context(), chi.URLParam(r, "jdID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jd_history_failed", "failed to load approval history", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) afterDecision(r *http.Request, user auth.UserContext, rec workflow.ApprovalRecord) {
	if h.Metrics != nil {
		h.Metrics.WorkflowDecisions.WithLabelValues(rec.Kind, rec.Decision).Inc()
	}
	if h.Audit != nil {
		reqID := middleware.GetRequestID(r.Context())
		if err := h.Audit.RecordDecision(r.Context(), user.TenantID, reqID, shared.ClientIP(r), rec); err != nil {
			slog.Warn("audit job description decision failed", "err", err)
		}
	}
}

func (h *Handler) failWorkflow(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, workflow.ErrSubjectNotFound):
		api.Fail(w, http.StatusNotFound, "jd_not_found", "job description not found", reqID)
	case errors.Is(err, workflow.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	case errors.Is(err, workflow.ErrVersionConflict):
		api.Fail(w, http.StatusConflict, "version_conflict", "job description was modified concurrently, retry", reqID)
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
		slog.Warn("audit core failed", "action", action, "err", err)
	}
}
