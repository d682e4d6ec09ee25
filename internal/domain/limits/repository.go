package limits

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists spending limits. Create must reject a second limit for
// the same (user, scope, period, category) with a conflict error.
type Repository interface {
	Create(ctx context.Context, limit *Limit) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Limit, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Limit, error)
	// FindActiveAt returns every limit of the user whose period contains t.
	FindActiveAt(ctx context.Context, userID uuid.UUID, t time.Time) ([]Limit, error)
	Save(ctx context.Context, limit *Limit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
