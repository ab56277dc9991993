package seeder

import (
	"context"

	"ascend/internal/database"
)

// Seeder inserts reference rows. Implementations must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
