package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"parking-violations/internal/interfaces"
	"parking-violations/internal/models/violationapi"
	"parking-violations/internal/persistence/datastore"
	"parking-violations/internal/service"
	"parking-violations/internal/violations"
)

type options struct {
	api         string
	local       bool
	timeout     time.Duration
	failureRate float64
	logLevel    string
	utc         bool
}

type application struct {
	controller *violations.Controller
	logger     *slog.Logger
	out        io.Writer
	loc        *time.Location
	interval   time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "violations",
		Short:        "List, search and resolve parking violations",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.api, "api", envOr("VIOLATIONS_API", "http://localhost:8080"), "Base URL of the violation API")
	flags.BoolVar(&opts.local, "local", false, "Use an in-process simulated service instead of the API")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout of a single API request")
	flags.Float64Var(&opts.failureRate, "failure-rate", service.DefaultFailureRate, "Simulated update failure rate with --local")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	flags.BoolVar(&opts.utc, "utc", false, "Print dates in UTC instead of local time")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newToggleCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func (o *options) newApp(cmd *cobra.Command) (*application, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: l}))

	svc, err := o.newService(cmd.Context(), logger)
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if o.utc {
		loc = time.UTC
	}
	return &application{
		controller: violations.New(svc, violations.WithLogger(logger)),
		logger:     logger,
		out:        cmd.OutOrStdout(),
		loc:        loc,
	}, nil
}

func (o *options) newService(ctx context.Context, logger *slog.Logger) (interfaces.ViolationService, error) {
	if !o.local {
		return violationapi.New(o.api, violationapi.NewHTTPClient(o.timeout)), nil
	}

	svc := service.New(datastore.New(), service.Config{
		FetchDelay:  service.DefaultFetchDelay,
		UpdateDelay: service.DefaultUpdateDelay,
		FailureRate: o.failureRate,
	}, service.WithLogger(logger))
	if err := svc.Seed(ctx, service.SeedViolations()); err != nil {
		return nil, err
	}
	return svc, nil
}

// load performs the initial fetch and reports its failure as an error.
func (app *application) load(ctx context.Context) error {
	<-app.controller.Start(ctx)
	if msg := app.controller.ErrorMessage(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
