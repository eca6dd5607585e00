// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"homestyle-ai/internal/config"
	pg "homestyle-ai/internal/infra/db/postgres"
	"homestyle-ai/internal/infra/logging"
	"homestyle-ai/internal/infra/metrics"
	red "homestyle-ai/internal/infra/redis"
	"homestyle-ai/internal/infra/scheduler"
	"homestyle-ai/internal/infra/security"
	"homestyle-ai/internal/infra/web"
	"homestyle-ai/internal/infra/worker"
	"homestyle-ai/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed checks)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- At-rest encryption (optional) ----
	var encSvc *security.EncryptionService
	if key := cfg.Security.EncryptionKey; key != "" {
		encSvc, err = security.NewEncryptionService(key)
		if err != nil {
			logger.Fatal().Err(err).Msg("encryption")
		}
	} else {
		logger.Warn().Msg("security.encryption_key not set; chat history stored in plaintext")
	}

	// ---- Repositories ----
	designRepo := pg.NewDesignRepo(pool)
	creditRepo := pg.NewCreditRepo(pool)
	historyStore := red.NewHistoryStore(redisClient, encSvc)
	counterStore := red.NewDailyCounterStore(redisClient)

	// ---- Workers ----
	dispatch := worker.NewPool(cfg.Chat.Workers, logger)
	dispatch.Start(ctx)
	defer dispatch.Stop()

	// ---- Use cases ----
	catalogUC := usecase.NewCatalogUseCase(designRepo, logger)
	creditUC := usecase.NewCreditUseCase(creditRepo, dispatch, logger)
	consultantUC := usecase.NewConsultantUseCase(historyStore, counterStore, creditUC, cfg.Chat, logger)
	defer consultantUC.Shutdown()

	if err := catalogUC.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial catalog load failed; will retry on schedule")
	}
	refresher := scheduler.NewScheduler(cfg.Catalog.RefreshInterval, catalogUC, logger)
	refresher.Start(ctx)
	defer refresher.Stop()

	// ---- HTTP ----
	srv := web.NewServer(catalogUC, consultantUC, cfg.Auth.JWTSecret, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	cancel()
}
