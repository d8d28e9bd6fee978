package datastore

import (
	"context"
	"sync/atomic"

	ordered "parking-violations/internal/datastore"
	"parking-violations/internal/models"
)

// Memory keeps the service's violations in process, in insertion order.
type Memory struct {
	store     *ordered.DataStore[models.Violation]
	destroyed atomic.Bool
}

func New() *Memory {
	return &Memory{
		store: ordered.New(models.ViolationID),
	}
}

func (m *Memory) Get(ctx context.Context, id string) (models.Violation, bool, error) {
	if err := m.check(ctx); err != nil {
		return models.Violation{}, false, err
	}

	v, ok := m.store.Get(id)
	return v, ok, nil
}

func (m *Memory) Upsert(ctx context.Context, data models.Violation) error {
	if err := m.check(ctx); err != nil {
		return err
	}

	m.store.Upsert(data)
	return nil
}

func (m *Memory) AsSlice(ctx context.Context) ([]models.Violation, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}

	return m.store.AsSlice(), nil
}

func (m *Memory) Destroy() {
	m.destroyed.Store(true)
	m.store.Replace(nil)
}

func (m *Memory) check(ctx context.Context) error {
	if m.destroyed.Load() {
		return ErrDestroyed
	}
	return ctx.Err()
}
