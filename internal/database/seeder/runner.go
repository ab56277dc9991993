package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ascend/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *slog.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Info("seeder finished", "name", s.Name(), "took", time.Since(start))
		}
	}
	return nil
}
