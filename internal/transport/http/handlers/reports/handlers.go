package reportshandler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/reports"
	"perfhub/internal/domain/sla"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	SLA     *sla.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, slaSvc *sla.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, SLA: slaSvc, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard/me", h.handleMyDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/dashboard/manager", h.handleManagerDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/dashboard/hr", h.handleHRDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/benchmark", h.handleBenchmark)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/sla", h.handleSLAReports)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/sla/{kind}/overdue", h.handleSLAOverdue)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Post("/sla/escalate", h.handleSLAEscalate)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/evaluations/{evaluationID}/pdf", h.handleEvaluationPDF)
	})
}

func (h *Handler) handleMyDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID, err := h.Service.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil || employeeID == "" {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee record for current user", reqID)
		return
	}

	dashboard, err := h.Service.Employee(r.Context(), user.TenantID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", reqID)
		return
	}
	api.Success(w, dashboard, reqID)
}

func (h *Handler) handleManagerDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	managerID := r.URL.Query().Get("employeeId")
	if managerID == "" {
		var err error
		managerID, err = h.Service.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
		if err != nil || managerID == "" {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee record for current user", reqID)
			return
		}
	}

	dashboard, err := h.Service.Manager(r.Context(), user.TenantID, managerID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", reqID)
		return
	}
	api.Success(w, dashboard, reqID)
}

func (h *Handler) handleHRDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	dashboard, err := h.Service.HR(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", reqID)
		return
	}
	api.Success(w, dashboard, reqID)
}

func (h *Handler) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cuts, err := h.Service.BenchmarkPanel(r.Context(), user.TenantID, r.URL.Query().Get("cycleId"), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benchmark_failed", "failed to compute benchmark cut points", reqID)
		return
	}
	api.Success(w, cuts, reqID)
}

func (h *Handler) handleSLAReports(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		report, err := h.SLA.ReportFor(r.Context(), user.TenantID, kind)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "sla_report_failed", "failed to compute compliance report", reqID)
			return
		}
		api.Success(w, report, reqID)
		return
	}

	all, err := h.SLA.ReportAll(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sla_report_failed", "failed to compute compliance reports", reqID)
		return
	}
	api.Success(w, all, reqID)
}

func (h *Handler) handleSLAOverdue(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	overdue, err := h.SLA.Overdue(r.Context(), user.TenantID, chi.URLParam(r, "kind"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sla_overdue_failed", "failed to list overdue approvals", reqID)
		return
	}
	api.Success(w, overdue, reqID)
}

func (h *Handler) handleSLAEscalate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	if err := h.SLA.Escalate(r.Context(), user.TenantID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "sla_escalate_failed", "failed to run escalation", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "escalated"}, reqID)
}

func (h *Handler) handleEvaluationPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	evaluationID := chi.URLParam(r, "evaluationID")

	// Render into a buffer first so failures still produce a JSON error
	// instead of a half-written PDF body.
	var buf bytes.Buffer
	if err := h.Service.WriteEvaluationPDF(r.Context(), &buf, user.TenantID, evaluationID); err != nil {
		api.Fail(w, http.StatusNotFound, "evaluation_not_found", "failed to render evaluation report", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "evaluation-"+evaluationID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
