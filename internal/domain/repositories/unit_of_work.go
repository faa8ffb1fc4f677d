package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. Lead upsert and
// match replacement run inside one transaction so no stale match rows can
// persist across a lead update.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
