package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "github.com/TheRebzu/ecodeli-sub009/internal/app"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/availability_get"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/healthcheck_head"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/matches_get"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/matches_post"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/partial_plan_get"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/partial_plan_post"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/ping_get"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/rule_delete"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/rule_window_put"
	"github.com/TheRebzu/ecodeli-sub009/internal/handlers/rest/segment_status_put"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/config"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/dotenv"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/kafka"
	metrics_system "github.com/TheRebzu/ecodeli-sub009/internal/pkg/metrics"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/middlewares/graceful_shutdown"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/middlewares/metrics"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/middlewares/rate_limiter"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/middlewares/timeout"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/postgres"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/redis"
	"github.com/TheRebzu/ecodeli-sub009/pkg/clock"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger/zap_adapter"
	"github.com/TheRebzu/ecodeli-sub009/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	bootLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := bootLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	mainLog := bootLogger.With()

	mainLog.Info("starting ecodeli-matching application")

	if err := dotenv.Load("service", os.Args[1:]); err != nil {
		if !errors.Is(err, dotenv.ErrNoEnvFile) {
			mainLog.Error("failed to load env file", logger.NewField("error", err))
			return
		}
		mainLog.Warn("No env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	// уровень логирования известен только после загрузки конфига
	zapLogger, err := zap_adapter.NewZapAdapterWithLevel(cfg.LogLevel)
	if err != nil {
		mainLog.Error("init leveled logger", logger.NewField("error", err))
		return
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	var appLogger logger.Logger = zapLogger

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client",
				logger.NewField("error", err),
			)
		}
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.SplitBrokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, metrics_system.DefaultCollectInterval)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	deps := dependencies{pool: pool, redis: redisClient}

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, deps, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	businessApp.BackgroundWorkers.Wait()
	runLog.Info("background tasks stopped")

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

// бакет клиента, молчащего дольше, забывается
const rateLimiterIdleTTL = 5 * time.Minute

// dependencies внешние зависимости, которые проверяет healthcheck.
type dependencies struct {
	pool  *pgxpool.Pool
	redis *goredis.Client
}

func (d dependencies) checks() []healthcheck_head.Check {
	return []healthcheck_head.Check{
		d.pool.Ping,
		func(ctx context.Context) error {
			return d.redis.Ping(ctx).Err()
		},
	}
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, deps dependencies, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	limiter := token_bucket.NewPerKey(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS), rateLimiterIdleTTL)
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterBurst, limiter))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, deps.checks()...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, clock.Real{})).Methods("GET")

	router.Handle("/announcements/{id}/matches", matches_post.New(log, app.ServiceMatching)).Methods("POST")
	router.Handle("/announcements/{id}/matches", matches_get.New(log, app.ServiceMatching)).Methods("GET")
	router.Handle("/announcements/{id}/partial-plan", partial_plan_post.New(log, app.ServicePartial)).Methods("POST")

	router.Handle("/providers/{id}/availability", availability_get.New(log, app.ServiceAvailability, cfg.Calendar.Location)).Methods("GET")
	router.Handle("/availability-rules/{id}", rule_delete.New(log, app.ServiceAvailability)).Methods("DELETE")
	router.Handle("/availability-rules/{id}/window", rule_window_put.New(log, app.ServiceAvailability)).Methods("PUT")

	router.Handle("/partial-plans/{id}", partial_plan_get.New(log, app.ServicePartial)).Methods("GET")
	router.Handle("/segments/{id}/status", segment_status_put.New(log, app.ServicePartial)).Methods("PUT")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
