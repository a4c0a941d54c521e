package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/entmatch/internal/config"
	"github.com/kailas-cloud/entmatch/internal/db"
	dbBleve "github.com/kailas-cloud/entmatch/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/entmatch/internal/db/redis"
	logpkg "github.com/kailas-cloud/entmatch/internal/logger"
	"github.com/kailas-cloud/entmatch/internal/metrics"
	recordrepo "github.com/kailas-cloud/entmatch/internal/repository/record"
	"github.com/kailas-cloud/entmatch/internal/seed"
	chiTransport "github.com/kailas-cloud/entmatch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/entmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/entmatch/internal/usecase/match"
	resolveuc "github.com/kailas-cloud/entmatch/internal/usecase/resolve"
	"github.com/kailas-cloud/entmatch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(logpkg.Options{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting entmatch API server",
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_driver", cfg.Index.Driver),
	)

	schema := cfg.Index.Fields.Schema()

	store, redisStore, err := openStore(cfg.Index, schema.MatchField, schema.FilterFields())
	if err != nil {
		logger.Fatal("Failed to create index store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Index.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Index not ready", zap.Error(err))
	}
	if redisStore != nil {
		if err := redisStore.EnsureIndex(ctx); err != nil {
			logger.Fatal("Failed to create record index", zap.Error(err))
		}
	}
	logger.Info("Connected to index")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterResolutionMetrics()

	recRepo := recordrepo.New(store)

	if cfg.Index.SeedFile != "" {
		if _, err := seed.Load(ctx, cfg.Index.SeedFile, recRepo, logger); err != nil {
			logger.Fatal("Failed to load seed catalog", zap.Error(err))
		}
	}

	engine := matchuc.New(recRepo, schema.IDField, cfg.Index.ExcludedFields, logger)
	resolveSvc := resolveuc.New(engine, schema, cfg.Search.Limit, logger)

	// Pass nil interface (not typed nil pointer) when the backend has no schema to check.
	var checker healthuc.SchemaChecker
	if redisStore != nil {
		checker = redisStore
	}
	healthSvc := healthuc.New(store, checker)

	server := chiTransport.NewServer(resolveSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the index backend named by cfg.Driver. The Redis store is
// also returned on its own when selected, nil otherwise.
func openStore(cfg config.IndexConfig, matchField string, tagFields []string) (db.Store, *dbRedis.Store, error) {
	switch cfg.Driver {
	case "bleve":
		s, err := dbBleve.NewStore(dbBleve.Config{
			Path:       cfg.Path,
			MatchField: matchField,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "redis":
		idx, err := dbRedis.RecordIndex(cfg.IndexName, cfg.KeyPrefix, matchField, tagFields...)
		if err != nil {
			return nil, nil, fmt.Errorf("record index: %w", err)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			Index:    idx,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown index driver %q", cfg.Driver)
	}
}
