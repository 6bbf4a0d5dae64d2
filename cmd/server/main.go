package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"perfhub/internal/domain/audit"
	"perfhub/internal/domain/auth"
	"perfhub/internal/domain/benchmark"
	"perfhub/internal/domain/bonus"
	"perfhub/internal/domain/competency"
	"perfhub/internal/domain/core"
	"perfhub/internal/domain/evaluation"
	"perfhub/internal/domain/goals"
	"perfhub/internal/domain/notifications"
	"perfhub/internal/domain/pdi"
	"perfhub/internal/domain/reports"
	"perfhub/internal/domain/sla"
	"perfhub/internal/domain/weights"
	"perfhub/internal/domain/workflow"
	"perfhub/internal/platform/cache"
	"perfhub/internal/platform/config"
	"perfhub/internal/platform/db"
	"perfhub/internal/platform/email"
	"perfhub/internal/platform/metrics"
	audithandler "perfhub/internal/transport/http/handlers/audit"
	authhandler "perfhub/internal/transport/http/handlers/auth"
	bonushandler "perfhub/internal/transport/http/handlers/bonus"
	competencyhandler "perfhub/internal/transport/http/handlers/competency"
	corehandler "perfhub/internal/transport/http/handlers/core"
	evaluationhandler "perfhub/internal/transport/http/handlers/evaluation"
	goalshandler "perfhub/internal/transport/http/handlers/goals"
	notificationshandler "perfhub/internal/transport/http/handlers/notifications"
	pdihandler "perfhub/internal/transport/http/handlers/pdi"
	reportshandler "perfhub/internal/transport/http/handlers/reports"
	weightshandler "perfhub/internal/transport/http/handlers/weights"
	"perfhub/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	var valueCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Error("redis connect failed", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		valueCache = redisCache
	}

	m := metrics.New()
	mailer := email.New(cfg)

	authStore := auth.NewStore(pool)
	auditSvc := audit.New(pool)
	notifySvc := notifications.New(notifications.NewStore(pool), mailer)

	workflowSvc := workflow.NewService(workflow.NewStore(pool))
	coreSvc := core.NewService(core.NewStore(pool), workflowSvc)
	weightsSvc := weights.NewService(weights.NewStore(pool))
	goalsSvc := goals.NewService(goals.NewStore(pool), workflowSvc)
	competencySvc := competency.NewService(competency.NewStore(pool))
	evaluationSvc := evaluation.NewService(evaluation.NewStore(pool), weightsSvc, goalsSvc.EmployeeFinalScore, competencySvc.EmployeeScore)
	bonusSvc := bonus.NewService(bonus.NewStore(pool), workflowSvc)
	pdiSvc := pdi.NewService(pdi.NewStore(pool))
	benchmarkSvc := benchmark.NewService(benchmark.NewStore(pool), valueCache)
	slaSvc := sla.New(sla.NewStore(pool), notifySvc, cfg.SLAThresholdDays)
	reportsSvc := reports.NewService(reports.NewStore(pool), slaSvc, benchmarkSvc)

	go runEscalation(ctx, slaSvc, m, cfg.SLAEscalationInterval)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(m))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc, authStore, auditSvc, m).RegisterRoutes(r)
		weightshandler.NewHandler(weightsSvc, authStore, auditSvc).RegisterRoutes(r)
		goalshandler.NewHandler(goalsSvc, coreSvc, authStore, notifySvc, auditSvc, m).RegisterRoutes(r)
		competencyhandler.NewHandler(competencySvc, authStore, auditSvc).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationSvc, authStore, auditSvc).RegisterRoutes(r)
		bonushandler.NewHandler(bonusSvc, coreSvc, authStore, auditSvc, m).RegisterRoutes(r)
		pdihandler.NewHandler(pdiSvc, authStore, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, slaSvc, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc, authStore).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, authStore).RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("perfhub server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// runEscalation periodically flags overdue approvals for every tenant. The
// gauge mirrors the latest sweep so dashboards see breach counts without
// waiting for the next scrape of a report endpoint.
func runEscalation(ctx context.Context, slaSvc *sla.Service, m *metrics.Metrics, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepEscalations(ctx, slaSvc, m)
		}
	}
}

func sweepEscalations(ctx context.Context, slaSvc *sla.Service, m *metrics.Metrics) {
	tenants, err := slaSvc.TenantIDs(ctx)
	if err != nil {
		slog.Warn("sla escalation tenant lookup failed", "err", err)
		return
	}
	for _, tenantID := range tenants {
		for _, kind := range []string{workflow.KindGoalApproval, workflow.KindJobDescription, workflow.KindBonusPolicy} {
			overdue, err := slaSvc.Overdue(ctx, tenantID, kind)
			if err != nil {
				slog.Warn("sla overdue lookup failed", "tenant", tenantID, "kind", kind, "err", err)
				continue
			}
			m.SLABreaches.WithLabelValues(kind).Set(float64(len(overdue)))
		}
		if err := slaSvc.Escalate(ctx, tenantID); err != nil {
			slog.Warn("sla escalation failed", "tenant", tenantID, "err", err)
		}
	}
}
