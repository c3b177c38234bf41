package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/handler"
	"github.com/pazorg/candidatetrack/internal/infrastructure/logger"
	"github.com/pazorg/candidatetrack/internal/infrastructure/objectstore"
	"github.com/pazorg/candidatetrack/internal/infrastructure/redis"
	"github.com/pazorg/candidatetrack/internal/observability/metrics"
	"github.com/pazorg/candidatetrack/internal/observability/tracing"
	"github.com/pazorg/candidatetrack/internal/repository"
	"github.com/pazorg/candidatetrack/internal/security"
	"github.com/pazorg/candidatetrack/internal/security/audit"
	"github.com/pazorg/candidatetrack/internal/security/auth"
	"github.com/pazorg/candidatetrack/internal/security/middleware"
	"github.com/pazorg/candidatetrack/internal/security/ratelimit"
	"github.com/pazorg/candidatetrack/internal/service"
	"github.com/pazorg/candidatetrack/internal/worker"
	"github.com/pazorg/candidatetrack/pkg/config"
	"github.com/pazorg/candidatetrack/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting CandidateTrack server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(ctx, log, "candidatetrack", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to Postgres and run migrations
	pool, err := database.NewConnectionPool(ctx, cfg.DatabaseURL, database.PoolConfig{}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool.GetDB()); err != nil {
		log.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Connect to Redis. The cache is an optimization; when Redis is
	// unreachable the server runs directly against Postgres.
	var candidateRepo domain.CandidateRepository = repository.NewPostgresCandidateRepository(pool.GetDB(), log)
	var redisRaw *goredis.Client
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, running without cache", slog.String("error", err.Error()))
	} else {
		defer redisClient.Close()
		redisRaw = redisClient.Raw()
		candidateRepo = repository.NewCachedCandidateRepository(
			candidateRepo,
			redisRaw,
			time.Duration(cfg.CacheTTLSeconds)*time.Second,
			log,
		)
	}

	// 6. Resume storage
	resumeStore, err := objectstore.NewLocalStore(cfg.ResumeDir, cfg.ResumeBaseURL, log)
	if err != nil {
		log.Error("failed to initialize resume storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Initialize services
	adminUserRepo := repository.NewPostgresAdminUserRepository(pool.GetDB(), log)
	funnelService := service.NewFunnelService(candidateRepo, resumeStore, log)
	adminService := service.NewAdminService(candidateRepo, log)
	authService := service.NewAuthService(adminUserRepo, cfg.JWTSecret, log)

	bootstrapAdmin(ctx, authService, log)

	// 8. Initialize handlers
	questionsHandler := handler.NewQuestionsHandler(log)
	intakeHandler := handler.NewIntakeHandler(funnelService, log)
	exitHandler := handler.NewExitQuestionnaireHandler(funnelService, log)
	lookupHandler := handler.NewAssessmentLookupHandler(funnelService, log)
	assessmentHandler := handler.NewAssessmentSubmitHandler(funnelService, log)
	postInterviewHandler := handler.NewPostInterviewHandler(funnelService, log)
	resumeHandler := handler.NewResumeUploadHandler(funnelService, log)
	statusHandler := handler.NewStatusHandler(funnelService, log)
	loginHandler := handler.NewLoginHandler(authService, log)
	adminCandidates := handler.NewAdminCandidatesHandler(adminService, log)
	adminUpdate := handler.NewAdminUpdateHandler(adminService, log)
	summaryHandler := handler.NewSummaryHandler(adminService, log)
	exportHandler := handler.NewExportHandler(adminService, log)
	healthHandler := handler.NewHealthHandler(pool.GetDB(), redisRaw, log)

	// 8a. Security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "candidatetrack")
	authzService := security.NewAuthorizationService(log)
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	auditLogger := audit.NewLogger(log)

	// 9. Routes
	mux := http.NewServeMux()
	mux.Handle("GET /api/questions", questionsHandler)
	mux.Handle("POST /api/intake", intakeHandler)
	mux.Handle("POST /api/exit-questionnaire", exitHandler)
	mux.Handle("GET /api/assessment/lookup", lookupHandler)
	mux.Handle("GET /api/status", statusHandler)
	mux.Handle("POST /api/candidates/{id}/assessment", assessmentHandler)
	mux.Handle("POST /api/candidates/{id}/post-interview", postInterviewHandler)
	mux.Handle("POST /api/candidates/{id}/resume", resumeHandler)

	mux.Handle("POST /api/admin/login", loginHandler)
	mux.HandleFunc("GET /api/admin/candidates", adminCandidates.List)
	mux.HandleFunc("GET /api/admin/candidates/{id}", adminCandidates.Get)
	mux.HandleFunc("PATCH /api/admin/candidates/{id}", adminUpdate.Patch)
	mux.HandleFunc("DELETE /api/admin/candidates/{id}", adminCandidates.Delete)
	mux.HandleFunc("POST /api/admin/candidates/{id}/notes", adminUpdate.AddNote)
	mux.HandleFunc("POST /api/admin/candidates/{id}/emails", adminUpdate.LogEmail)
	mux.HandleFunc("POST /api/admin/candidates/bulk-stage", adminUpdate.BulkStage)
	mux.Handle("GET /api/admin/candidates/{id}/summary", summaryHandler)
	mux.HandleFunc("GET /api/admin/export.csv", exportHandler.CSV)
	mux.HandleFunc("GET /api/admin/export.xlsx", exportHandler.XLSX)

	mux.Handle("GET /files/", http.StripPrefix("/files/", resumeStore.Handler()))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	instrumented := metrics.HTTPMetricsMiddleware(mux)

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		instrumented.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> rate limit -> JWT -> audit -> validation -> CORS.
	// JWT runs before audit so audit entries carry the admin identity.
	rootHandler := withRequestID(
		middleware.RateLimitMiddleware(rateLimiter, log)(
			middleware.JWTMiddleware(tokenManager, authzService, log)(
				middleware.AuditMiddleware(auditLogger)(
					middleware.ValidateJSONContentType(log)(
						middleware.RejectSuspiciousPaths(log)(handlerWithCORS),
					),
				),
			),
		),
		log,
	)

	// 10. Start the divergence reconcile worker
	reconcileWorker := worker.NewReconcileWorker(
		candidateRepo,
		log,
		time.Duration(cfg.ReconcileIntervalMinutes)*time.Minute,
	)
	go reconcileWorker.Start(ctx)

	// 11. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	rateLimiter.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

// bootstrapAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. A duplicate account is not an error so restarts are
// idempotent.
func bootstrapAdmin(ctx context.Context, authService *service.AuthService, log *slog.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	err := authService.CreateAdmin(ctx, email, password)
	if err == nil {
		log.Info("bootstrapped admin account", slog.String("email", email))
		return
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		log.Error("failed to bootstrap admin account", slog.String("error", err.Error()))
	}
}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), audit.RequestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
