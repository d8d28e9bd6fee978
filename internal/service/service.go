// Package service is the violation service: it owns the authoritative
// records and can simulate a slow, unreliable backend.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"parking-violations/internal/interfaces"
	"parking-violations/internal/models"
)

var (
	ErrNotFound     = errors.New("Violation not found")
	ErrUpdateFailed = errors.New("Failed to update violation status")
)

const (
	DefaultFetchDelay  = 300 * time.Millisecond
	DefaultUpdateDelay = time.Second
	DefaultFailureRate = 0.2
)

type Config struct {
	FetchDelay  time.Duration
	UpdateDelay time.Duration
	// Probability in [0, 1] that an update is rejected.
	FailureRate float64
}

type Service struct {
	violations interfaces.Violations
	cfg        Config
	logger     *slog.Logger
	random     func() float64
	onUpdate   func(models.Violation)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRandom replaces the source used to decide simulated failures.
func WithRandom(random func() float64) Option {
	return func(s *Service) {
		s.random = random
	}
}

// OnUpdate registers fn to be called with every persisted status change.
func OnUpdate(fn func(models.Violation)) Option {
	return func(s *Service) {
		s.onUpdate = fn
	}
}

func New(violations interfaces.Violations, cfg Config, opts ...Option) *Service {
	s := &Service{
		violations: violations,
		cfg:        cfg,
		logger:     slog.Default(),
		random:     rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed stores records unless the store already holds data.
func (s *Service) Seed(ctx context.Context, records []models.Violation) error {
	existing, err := s.violations.AsSlice(ctx)
	if err != nil {
		return fmt.Errorf("list violations: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("store already seeded", "count", len(existing))
		return nil
	}

	for _, v := range records {
		if err := s.violations.Upsert(ctx, v); err != nil {
			return fmt.Errorf("seed violation %s: %w", v.ID, err)
		}
	}
	s.logger.Info("seeded violations", "count", len(records))
	return nil
}

func (s *Service) GetViolations(ctx context.Context) ([]models.Violation, error) {
	if err := sleep(ctx, s.cfg.FetchDelay); err != nil {
		return nil, err
	}

	return s.violations.AsSlice(ctx)
}

func (s *Service) UpdateViolationStatus(ctx context.Context, id string, resolved bool) (models.Violation, error) {
	if err := sleep(ctx, s.cfg.UpdateDelay); err != nil {
		return models.Violation{}, err
	}

	if s.random() < s.cfg.FailureRate {
		s.logger.Warn("simulated update failure", "id", id)
		return models.Violation{}, ErrUpdateFailed
	}

	violation, found, err := s.violations.Get(ctx, id)
	if err != nil {
		return models.Violation{}, err
	}
	if !found {
		return models.Violation{}, ErrNotFound
	}

	violation.Resolved = resolved
	if err := s.violations.Upsert(ctx, violation); err != nil {
		return models.Violation{}, err
	}

	if s.onUpdate != nil {
		s.onUpdate(violation)
	}
	return violation, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
