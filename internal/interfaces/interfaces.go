package interfaces

import (
	"context"

	"parking-violations/internal/models"
)

type ViolationService interface {
	GetViolations(ctx context.Context) ([]models.Violation, error)
	UpdateViolationStatus(ctx context.Context, id string, resolved bool) (models.Violation, error)
}

// Violations is the storage behind the violation service.
type Violations interface {
	Get(ctx context.Context, id string) (models.Violation, bool, error)
	Upsert(ctx context.Context, data models.Violation) error
	AsSlice(ctx context.Context) ([]models.Violation, error)
	Destroy()
}
