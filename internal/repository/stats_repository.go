package repository

import (
	"context"
	"database/sql"

	"catalog-assistant/internal/domain"

	"golang.org/x/sync/errgroup"
)

// StatsRepository reports row counts for the health endpoint.
type StatsRepository interface {
	CollectionStats(ctx context.Context) (*domain.CollectionStats, error)
}

type statsRepository struct {
	counter BulkWriter
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{counter: NewBulkRepository(db)}
}

// CollectionStats issues the four counts concurrently.
func (r *statsRepository) CollectionStats(ctx context.Context) (*domain.CollectionStats, error) {
	stats := &domain.CollectionStats{}

	g, ctx := errgroup.WithContext(ctx)
	for table, dst := range map[string]*int64{
		"products":        &stats.Products,
		"orders":          &stats.Orders,
		"order_items":     &stats.OrderItems,
		"inventory_items": &stats.InventoryItems,
	} {
		g.Go(func() error {
			n, err := r.counter.Count(ctx, table)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
