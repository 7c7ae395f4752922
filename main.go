package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Fatih/internal/assessment"
	"Fatih/internal/auth"
	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/fatigue"
	"Fatih/internal/calc/ffs"
	"Fatih/internal/calc/premium/batch"
	"Fatih/internal/calc/premium/importer"
	"Fatih/internal/calc/report"
	"Fatih/internal/config"
	applogger "Fatih/internal/logger"
	"Fatih/internal/metrics"
	"Fatih/internal/repo"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

const (
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 10 * time.Minute
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HandleList(ctx context.Context, router *mux.Router, store repo.Repository, cfg *config.Config, logger *zap.Logger) {
	observe := metrics.Middleware(logger)
	router.Use(observe)
	// mux skips router middleware for requests that match no route
	router.NotFoundHandler = observe(http.NotFoundHandler())
	router.MethodNotAllowedHandler = observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, Log: logger}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go limiter.Cleanup(ctx, limiterSweepInterval, limiterIdleTTL)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	burstH := &burst.Handler{Log: logger}
	fatigueH := &fatigue.Handler{Log: logger}
	ffsH := &ffs.Handler{Log: logger, MaxYears: cfg.MaxProjection}
	analysisH := &analysis.Handler{Log: logger}
	reportH := &report.Handler{Log: logger, MaxYears: cfg.MaxProjection}
	batchH := &batch.Handler{Log: logger, Workers: cfg.BatchWorkers, MaxItems: cfg.MaxBatchItems}
	importH := &importer.Handler{
		Log:            logger,
		Workers:        cfg.BatchWorkers,
		MaxItems:       cfg.MaxBatchItems,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	assessmentH := &assessment.Handler{Repo: store, Log: logger, MaxYears: cfg.MaxProjection}

	secureApi.HandleFunc("/tools/burst/calc", burstH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/fatigue/calc", fatigueH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/fatigue/diagram", fatigueH.Diagram).Methods("POST")
	secureApi.HandleFunc("/tools/ffs/project", ffsH.Project).Methods("POST")
	secureApi.HandleFunc("/tools/ffs/export", reportH.ExportProjection).Methods("POST")
	secureApi.HandleFunc("/tools/analysis/calc", analysisH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/compare/calc", batchH.Compare).Methods("POST")
	secureApi.HandleFunc("/tools/compare/import", importH.Configurations).Methods("POST")

	secureApi.HandleFunc("/assessments", assessmentH.Save).Methods("POST")
	secureApi.HandleFunc("/assessments", assessmentH.List).Methods("GET")
	secureApi.HandleFunc("/assessments/{id}", assessmentH.Get).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := applogger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := auth.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()
	store := repo.NewPostgresRepository(db)
	if err := store.Migrate(ctx); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	router := mux.NewRouter()
	HandleList(ctx, router, store, cfg, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(router),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	logger.Info("server stopped")
}
