package loader

import (
	"context"
	"fmt"
	"time"

	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

// Pipeline runs entity loads one after another against a data directory.
type Pipeline struct {
	loader  *Loader
	store   repository.BulkWriter
	dataDir string
	jobs    []Job
	locker  Locker
	logger  *zap.Logger
}

type Option func(*Pipeline)

// WithJobs restricts the pipeline to jobs, run in the given order.
func WithJobs(jobs ...Job) Option {
	return func(p *Pipeline) {
		p.jobs = jobs
	}
}

// WithLocker makes each run hold locker for its duration.
func WithLocker(locker Locker) Option {
	return func(p *Pipeline) {
		p.locker = locker
	}
}

// NewPipeline creates a pipeline over every entity in AllJobs order unless
// WithJobs says otherwise.
func NewPipeline(loader *Loader, store repository.BulkWriter, dataDir string, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:  loader,
		store:   store,
		dataDir: dataDir,
		jobs:    AllJobs(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loads each entity in turn and stops at the first fatal error. The
// results of the loads that finished are returned either way.
func (p *Pipeline) Run(ctx context.Context) ([]Result, error) {
	var lease Lease
	if p.locker != nil {
		var err error
		lease, err = p.locker.Lock(ctx)
		if err != nil {
			return nil, err
		}
		defer lease.Release()
	}

	start := time.Now()
	p.logger.Info("Starting data load",
		zap.String("data_dir", p.dataDir),
		zap.Int("entities", len(p.jobs)),
		zap.Int("batch_size", p.loader.BatchSize()),
	)

	results := make([]Result, 0, len(p.jobs))
	for _, job := range p.jobs {
		target := job.Describe()
		path := ResolvePath(p.dataDir, target.File)

		if lease != nil {
			if err := lease.Refresh(ctx); err != nil {
				p.logger.Error("Loader lock refresh failed", zap.String("entity", target.Name), zap.Error(err))
				return results, err
			}
		}

		res, err := job.Run(ctx, p.loader, path)
		if err != nil {
			p.logger.Error("Data load failed", zap.String("entity", target.Name), zap.Error(err))
			return results, err
		}
		results = append(results, res)
	}

	p.logger.Info("All data loaded", zap.Duration("duration", time.Since(start)))

	if err := p.logSummary(ctx); err != nil {
		return results, err
	}

	return results, nil
}

// logSummary reads back the final row count of every loaded table.
func (p *Pipeline) logSummary(ctx context.Context) error {
	for _, job := range p.jobs {
		target := job.Describe()

		count, err := p.store.Count(ctx, target.Table)
		if err != nil {
			return fmt.Errorf("%s: count rows: %w", target.Name, err)
		}
		p.logger.Info("Database summary", zap.String("entity", target.Name), zap.Int64("records", count))
	}
	return nil
}
