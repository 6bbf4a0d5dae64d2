package competencyhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/competency"
	"perfhub/internal/transport/http/api"
	"perfhub/internal/transport/http/middleware"
	"perfhub/internal/transport/http/shared"
)

type Handler struct {
	Service *competency.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *competency.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/competencies", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCompetencyRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermCompetencyWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermCompetencyRead, h.Perms)).Get("/assignments", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermCompetencyWrite, h.Perms)).Post("/assignments", h.handleCreateAssignment)
		r.With(middleware.RequirePermission(auth.PermCompetencyWrite, h.Perms)).Put("/assignments/{assignmentID}/level", h.handleUpdateLevel)
		r.With(middleware.RequirePermission(auth.PermCompetencyRead, h.Perms)).Get("/employees/{employeeID}/score", h.handleEmployeeScore)
		r.With(middleware.RequirePermission(auth.PermCompetencyRead, h.Perms)).Get("/departments/{departmentID}/gap-matrix", h.handleGapMatrix)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	list, err := h.Service.ListCompetencies(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "competency_list_failed", "failed to list competencies", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		MaxLevel    int    `json:"maxLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.MaxLevel <= 0 {
		payload.MaxLevel = 5
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateCompetency(r.Context(), competency.Competency{
		TenantID:    user.TenantID,
		Name:        payload.Name,
		Description: payload.Description,
		MaxLevel:    payload.MaxLevel,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "competency_create_failed", "failed to create competency", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "competency", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	list, err := h.Service.ListAssignments(r.Context(), user.TenantID, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		CompetencyID  string `json:"competencyId"`
		EmployeeID    string `json:"employeeId"`
		RequiredLevel int    `json:"requiredLevel"`
		CurrentLevel  int    `json:"currentLevel"`
		Weight        int    `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("competencyId", payload.CompetencyID, "competency id required")
	v.Required("employeeId", payload.EmployeeID, "employee id required")
	v.Range("requiredLevel", payload.RequiredLevel, 1, 10, "required level must be between 1 and 10")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateAssignment(r.Context(), competency.Assignment{
		TenantID:      user.TenantID,
		CompetencyID:  payload.CompetencyID,
		EmployeeID:    payload.EmployeeID,
		RequiredLevel: payload.RequiredLevel,
		CurrentLevel:  payload.CurrentLevel,
		Weight:        payload.Weight,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_create_failed", "failed to create assignment", reqID)
		return
	}

	h.record(r, user, audit.ActionCreate, "competency_assignment", id, payload)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateLevel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload struct {
		CurrentLevel int `json:"currentLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	assignmentID := chi.URLParam(r, "assignmentID")
	if err := h.Service.UpdateCurrentLevel(r.Context(), user.TenantID, assignmentID, payload.CurrentLevel); err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_update_failed", "failed to update assignment level", reqID)
		return
	}

	h.record(r, user, audit.ActionUpdate, "competency_assignment", assignmentID, payload)
	api.Success(w, map[string]string{"id": assignmentID}, reqID)
}

func (h *Handler) handleEmployeeScore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	score, err := h.Service.EmployeeScore(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "competency_score_failed", "failed to compute competency score", reqID)
		return
	}
	api.Success(w, map[string]float64{"score": score}, reqID)
}

func (h *Handler) handleGapMatrix(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	matrix, err := h.Service.DepartmentGapMatrix(r.Context(), user.TenantID, chi.URLParam(r, "departmentID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "gap_matrix_failed", "failed to compute gap matrix", reqID)
		return
	}
	api.Success(w, matrix, reqID)
}

func (h *Handler) record(r *http.Request, user auth.UserContext, action, entityType, id string, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, action, entityType, id, reqID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit competency failed", "action", action, "err", err)
	}
}
