package report

import (
	"context"
	"time"
)

// Cache is the read cache for rendered dashboards. Implementations must
// treat a miss as (nil, false, nil); errors are reserved for backend
// failures, which callers degrade around rather than surface.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
