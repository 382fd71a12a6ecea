package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/app"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/config"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/database"
	apphttp "github.com/fadeyibigbolahan/mbjobs-backend/internal/http"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/handlers"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/metrics"
	httpmw "github.com/fadeyibigbolahan/mbjobs-backend/internal/http/middleware"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/response"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/observability"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/repository/postgres"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/security"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/sweep"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	hireRepo := postgres.NewHireRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	employmentRepo := postgres.NewEmploymentRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	quotaService := app.NewQuotaService(planRepo, jobRepo)
	jobService := app.NewJobService(jobRepo, userRepo, applicationRepo, quotaService, eventRepo)
	employmentService := app.NewEmploymentService(employmentRepo, eventRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobService, employmentService, eventRepo)
	hireService := app.NewHireService(jobRepo, hireRepo, applicationRepo, employmentService, eventRepo)

	var applyLimiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		applyLimiter = httpmw.NewRedisLimiter(redis.NewClient(opt))
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		HireHandler:        handlers.NewHireHandler(hireService),
		EmploymentHandler:  handlers.NewEmploymentHandler(employmentService),
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
		ApplyLimiter:       applyLimiter,
		ApplyLimit:         cfg.ApplyLimit,
		ApplyWindow:        cfg.ApplyWindow,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweep.NewRunner(jobService, cfg.SweepInterval, logger).Run(sweepCtx)

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
