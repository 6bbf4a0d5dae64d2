package weightshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/weights"
	"perfhub/internal/transport/http/middleware"
)

type fakeStore struct {
	configs []weights.Configuration
	created weights.Configuration
}

func (f *fakeStore) Create(_ context.Context, cfg weights.Configuration) (string, error) {
	f.created = cfg
	return "cfg-1", nil
}

func (f *fakeStore) Update(_ context.Context, _ weights.Configuration) error { return nil }

func (f *fakeStore) Get(_ context.Context, _, configID string) (weights.Configuration, error) {
	for _, cfg := range f.configs {
		if cfg.ID == configID {
			return cfg, nil
		}
	}
	return weights.Configuration{}, weights.ErrNotFound
}

func (f *fakeStore) List(_ context.Context, _, _ string) ([]weights.Configuration, error) {
	return f.configs, nil
}

func (f *fakeStore) ListActive(_ context.Context, _ string) ([]weights.Configuration, error) {
	var active []weights.Configuration
	for _, cfg := range f.configs {
		if cfg.Active {
			active = append(active, cfg)
		}
	}
	return active, nil
}

func (f *fakeStore) SetActive(_ context.Context, _, _ string, _ bool) error { return nil }

type allowAllPerms struct{}

func (allowAllPerms) HasPermission(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func newTestRouter(store *fakeStore) *chi.Mux {
	h := NewHandler(weights.NewService(store), allowAllPerms{}, nil)
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithUser(r.Context(), auth.UserContext{
				UserID:   "user-1",
				TenantID: "tenant-1",
				RoleID:   "role-hr",
				RoleName: auth.RoleHR,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.RegisterRoutes(router)
	return router
}

func TestCreateRejectsInvalidWeightSum(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	body := `{"name":"default","scope":"global","weights":{"goals":50,"competencies":30}}`
	req := httptest.NewRequest(http.MethodPost, "/weights/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success {
		t.Fatal("expected success=false")
	}
	if envelope.Error.Code != "invalid_weights" {
		t.Fatalf("error code = %q, want invalid_weights", envelope.Error.Code)
	}
}

func TestCreatePersistsValidConfiguration(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store)

	body := `{"name":"default","scope":"global","weights":{"goals":40,"competencies":30,"pir":20,"feedback":10}}`
	req := httptest.NewRequest(http.MethodPost, "/weights/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if store.created.TenantID != "tenant-1" {
		t.Fatalf("tenant = %q, want tenant-1", store.created.TenantID)
	}
	if store.created.Weights[scoring.CategoryGoals] != 40 {
		t.Fatalf("goals weight = %d, want 40", store.created.Weights[scoring.CategoryGoals])
	}
}

func TestResolvePrefersDepartmentOverGlobal(t *testing.T) {
	store := &fakeStore{configs: []weights.Configuration{
		{ID: "g", Scope: weights.ScopeGlobal, Active: true,
			Weights: map[scoring.Category]int{scoring.CategoryGoals: 100}},
		{ID: "d", Scope: weights.ScopeDepartment, ScopeRef: "dept-9", Active: true,
			Weights: map[scoring.Category]int{scoring.CategoryCompetencies: 100}},
	}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/weights/resolve?departmentId=dept-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var envelope struct {
		Data weights.Configuration `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != "d" {
		t.Fatalf("resolved config = %q, want d", envelope.Data.ID)
	}
}

func TestResolveNoActiveIs404(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/weights/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
