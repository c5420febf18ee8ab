package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

// DefaultBatchSize is the number of rows sent per insert statement.
const DefaultBatchSize = 1000

// Result summarises one entity load.
type Result struct {
	Entity   string
	Read     int   // rows read from the source, malformed ones included
	Skipped  int   // rows dropped before insert
	Inserted int64 // rows stored
	Rejected int64 // rows the store refused, typically duplicate keys
	Batches  int
}

// Loader replaces the contents of one table at a time from a source file.
type Loader struct {
	store     repository.BulkWriter
	batchSize int
	open      func(path string) (RecordSource, error)
	logger    *zap.Logger
}

// NewLoader creates a Loader. A non-positive batchSize selects DefaultBatchSize.
func NewLoader(store repository.BulkWriter, batchSize int, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		store:     store,
		batchSize: batchSize,
		open:      OpenSource,
		logger:    logger,
	}
}

// BatchSize is the number of rows sent per INSERT.
func (l *Loader) BatchSize() int {
	return l.batchSize
}

// Load reads every record of path through e.Transform, clears e.Table and
// inserts the transformed rows in batches. Rows that fail to parse or
// transform are logged and skipped. Opening the source and every store call
// are fatal on error; nothing is deleted when the source cannot be opened.
func Load[T any](ctx context.Context, l *Loader, path string, e Entity[T]) (Result, error) {
	res := Result{Entity: e.Name}
	log := l.logger.With(zap.String("entity", e.Name))
	start := time.Now()

	src, err := l.open(path)
	if err != nil {
		return res, fmt.Errorf("%s: open source: %w", e.Name, err)
	}
	defer src.Close()

	var rows []T
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		res.Read++
		if errors.Is(err, ErrMalformedRow) {
			res.Skipped++
			log.Warn("Skipping malformed row", zap.Int("record", res.Read), zap.Error(err))
			continue
		}
		if err != nil {
			return res, fmt.Errorf("%s: read %s: %w", e.Name, path, err)
		}

		row, err := e.Transform(rec)
		if err != nil {
			res.Skipped++
			log.Warn("Skipping record", zap.Int("record", res.Read), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	log.Info("Loading records",
		zap.String("path", path),
		zap.Int("records", len(rows)),
		zap.Int("skipped", res.Skipped),
	)

	deleted, err := l.store.DeleteAll(ctx, e.Table)
	if err != nil {
		return res, fmt.Errorf("%s: clear table: %w", e.Name, err)
	}
	log.Debug("Cleared table", zap.String("table", e.Table), zap.Int64("deleted", deleted))

	for offset := 0; offset < len(rows); offset += l.batchSize {
		end := min(offset+l.batchSize, len(rows))

		values := make([][]any, 0, end-offset)
		for _, row := range rows[offset:end] {
			values = append(values, e.Values(row))
		}

		inserted, err := l.store.InsertBatch(ctx, e.Table, e.Columns, values)
		if err != nil {
			return res, fmt.Errorf("%s: insert batch %d: %w", e.Name, res.Batches+1, err)
		}

		res.Batches++
		res.Inserted += inserted
		rejected := int64(len(values)) - inserted
		res.Rejected += rejected

		fields := []zap.Field{
			zap.Int("batch", res.Batches),
			zap.Int64("inserted", inserted),
		}
		if rejected > 0 {
			fields = append(fields, zap.Int64("rejected", rejected))
		}
		log.Info("Inserted batch", fields...)
	}

	log.Info("Loaded entity",
		zap.Int("read", res.Read),
		zap.Int("skipped", res.Skipped),
		zap.Int64("inserted", res.Inserted),
		zap.Int64("rejected", res.Rejected),
		zap.Int("batches", res.Batches),
		zap.Duration("duration", time.Since(start)),
	)

	return res, nil
}
