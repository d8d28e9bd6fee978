package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tmaxmax/go-sse"
	"golang.org/x/sync/errgroup"

	"parking-violations/internal/config"
	"parking-violations/internal/interfaces"
	"parking-violations/internal/models"
	"parking-violations/internal/persistence/datastore"
	"parking-violations/internal/persistence/myredis"
	"parking-violations/internal/service"
)

type application struct {
	sseHandler *sse.Server
	cfg        *config.Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	service    interfaces.ViolationService
}

func main() {
	var (
		configPath  string
		port        int
		storeType   string
		failureRate float64
		logLevel    string
	)
	flag.StringVar(&configPath, "config", getEnvString("CONFIG_PATH", ""), "Path to YAML config file")
	flag.IntVar(&port, "port", getEnvInt("PORT", 0), "API server port, overrides server.listen_address")
	flag.StringVar(&storeType, "store", getEnvString("STORE", ""), "Violation store: memory or redis")
	flag.Float64Var(&failureRate, "failure-rate", -1, "Probability of a simulated update failure")
	flag.StringVar(&logLevel, "log-level", getEnvString("LOG_LEVEL", ""), "debug, info, warn or error")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if port > 0 {
		cfg.Server.ListenAddress = fmt.Sprintf(":%d", port)
	}
	if storeType != "" {
		cfg.Store.Type = storeType
	}
	if failureRate >= 0 {
		cfg.Simulation.FailureRate = &failureRate
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := newLogger(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	violations, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer violations.Destroy()

	app := newApp(cfg, logger)
	svc := service.New(violations, service.Config{
		FetchDelay:  cfg.Simulation.FetchDelay,
		UpdateDelay: cfg.Simulation.UpdateDelay,
		FailureRate: *cfg.Simulation.FailureRate,
	}, service.WithLogger(logger), service.OnUpdate(app.publishViolation))
	if err := svc.Seed(ctx, service.SeedViolations()); err != nil {
		logger.Error("seed store", "error", err)
		os.Exit(1)
	}
	app.service = svc

	if err := app.serve(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logger *slog.Logger) *application {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "violations_api",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})
	registry.MustRegister(requests)

	return &application{
		sseHandler: sse.NewServer(),
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		requests:   requests,
	}
}

func (app *application) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         app.cfg.Server.ListenAddress,
		Handler:      app.routes(),
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
		IdleTimeout:  app.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info("listening", "addr", srv.Addr, "store", app.cfg.Store.Type)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (interfaces.Violations, error) {
	if cfg.Store.Type != "redis" {
		return datastore.New(), nil
	}

	store := myredis.New(&redis.Options{
		Addr:     cfg.Store.Redis.Address,
		Password: cfg.Store.Redis.Password,
		DB:       cfg.Store.Redis.DB,
	}, models.ViolationID).WithPrefix(cfg.Store.Redis.Prefix)
	if err := store.Ping(ctx); err != nil {
		store.Destroy()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Store.Redis.Address, err)
	}
	return store, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}
