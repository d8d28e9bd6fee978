package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-violations/internal/interfaces"
	"parking-violations/internal/models"
	"parking-violations/internal/persistence/datastore"
)

var _ interfaces.ViolationService = (*Service)(nil)

func newService(t *testing.T, cfg Config, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	s := New(datastore.New(), cfg, opts...)
	require.NoError(t, s.Seed(context.Background(), SeedViolations()))
	return s
}

func always(v float64) func() float64 {
	return func() float64 { return v }
}

func TestGetViolationsReturnsSeedInOrder(t *testing.T) {
	s := newService(t, Config{})

	got, err := s.GetViolations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SeedViolations(), got)
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	s := newService(t, Config{})

	require.NoError(t, s.Seed(context.Background(), []models.Violation{{ID: "99"}}))

	got, err := s.GetViolations(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(SeedViolations()))
}

func TestUpdatePersists(t *testing.T) {
	var published []models.Violation
	s := newService(t, Config{FailureRate: 0.5}, WithRandom(always(0.9)), OnUpdate(func(v models.Violation) {
		published = append(published, v)
	}))

	updated, err := s.UpdateViolationStatus(context.Background(), "1", true)

	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.True(t, updated.Resolved)

	all, err := s.GetViolations(context.Background())
	require.NoError(t, err)
	assert.True(t, all[0].Resolved)
	assert.Equal(t, []models.Violation{updated}, published)
}

func TestUpdateSimulatedFailure(t *testing.T) {
	s := newService(t, Config{FailureRate: 0.5}, WithRandom(always(0.1)))

	_, err := s.UpdateViolationStatus(context.Background(), "1", true)

	require.ErrorIs(t, err, ErrUpdateFailed)
	assert.Equal(t, "Failed to update violation status", err.Error())
	all, _ := s.GetViolations(context.Background())
	assert.False(t, all[0].Resolved)
}

func TestZeroFailureRateNeverFails(t *testing.T) {
	s := newService(t, Config{}, WithRandom(always(0)))

	_, err := s.UpdateViolationStatus(context.Background(), "2", false)

	assert.NoError(t, err)
}

func TestUpdateUnknownViolation(t *testing.T) {
	s := newService(t, Config{})

	_, err := s.UpdateViolationStatus(context.Background(), "missing", true)

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Violation not found", err.Error())
}

func TestDelayHonorsContext(t *testing.T) {
	s := newService(t, Config{FetchDelay: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.GetViolations(ctx)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
