// Package pipeline orchestrates the one-shot analysis run: obtain the
// enriched record set (snapshot cache or full archive parse), then aggregate
// it per weather category.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/snapshot"
)

// ArchiveFetcher downloads the raw archive when it is not on disk.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, sourceURL, destPath string) error
}

// SnapshotStore caches the enriched record set between runs.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.StormRecord, error)
	Save(ctx context.Context, records []domain.StormRecord) error
}

// ParseArchiveFunc parses a local archive into raw records.
type ParseArchiveFunc func(path string) (dataset.ParseResult, error)

// Result is everything a report needs from one run.
type Result struct {
	Records    []domain.StormRecord
	Aggregates []domain.AggregateRow
}

// Pipeline wires the load-enrich-aggregate stages together.
type Pipeline struct {
	fetcher ArchiveFetcher
	parse   ParseArchiveFunc
	store   SnapshotStore
	logger  *slog.Logger
	metrics *observability.Metrics

	sourceURL   string
	archivePath string
}

// New creates a Pipeline. The archive parser defaults to
// dataset.ParseArchive; tests override it via SetParseFunc.
func New(fetcher ArchiveFetcher, store SnapshotStore, logger *slog.Logger, metrics *observability.Metrics, sourceURL, archivePath string) *Pipeline {
	return &Pipeline{
		fetcher:     fetcher,
		parse:       dataset.ParseArchive,
		store:       store,
		logger:      logger,
		metrics:     metrics,
		sourceURL:   sourceURL,
		archivePath: archivePath,
	}
}

// SetParseFunc replaces the archive parser.
func (p *Pipeline) SetParseFunc(fn ParseArchiveFunc) {
	p.parse = fn
}

// Run executes the full pipeline and returns the enriched records plus the
// per-category aggregates.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	records, err := p.records(ctx)
	if err != nil {
		return Result{}, err
	}

	aggStart := time.Now()
	aggregates := domain.Aggregate(records)
	p.metrics.AggregateDuration.Observe(time.Since(aggStart).Seconds())

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("pipeline finished",
		"records", len(records),
		"categories", len(aggregates),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return Result{Records: records, Aggregates: aggregates}, nil
}

// records returns the enriched record set, preferring the snapshot cache and
// falling back to download-and-parse. A fresh parse is written back to the
// snapshot; a failed write is logged and ignored since the cache is only an
// optimization.
func (p *Pipeline) records(ctx context.Context) ([]domain.StormRecord, error) {
	cached, err := p.store.Load(ctx)
	switch {
	case err == nil:
		p.metrics.SnapshotLookups.WithLabelValues("hit").Inc()
		p.observeRecords(cached)
		return cached, nil
	case !errors.Is(err, snapshot.ErrNoSnapshot):
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	p.metrics.SnapshotLookups.WithLabelValues("miss").Inc()

	if err := p.fetcher.Fetch(ctx, p.sourceURL, p.archivePath); err != nil {
		return nil, fmt.Errorf("fetch archive: %w", err)
	}

	parseStart := time.Now()
	result, err := p.parse(p.archivePath)
	if err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}
	p.metrics.ParseDuration.Observe(time.Since(parseStart).Seconds())
	p.metrics.RecordsParsed.Add(float64(len(result.Records)))
	p.metrics.RowsSkipped.Add(float64(result.Skipped))
	p.logger.Info("archive parsed",
		"records", len(result.Records),
		"skipped", result.Skipped,
		"duration", time.Since(parseStart).Round(time.Millisecond),
	)

	records := domain.EnrichRecords(result.Records)
	p.observeRecords(records)

	if err := p.store.Save(ctx, records); err != nil {
		p.logger.Warn("snapshot save failed, next run will re-parse", "error", err)
	}

	return records, nil
}

// observeRecords updates per-record counters for a record set.
func (p *Pipeline) observeRecords(records []domain.StormRecord) {
	var invalidDates, inScope int
	for _, rec := range records {
		if rec.BeginDate.IsZero() {
			invalidDates++
		}
		if rec.InScope {
			inScope++
		}
	}
	p.metrics.InvalidDates.Add(float64(invalidDates))
	p.metrics.RecordsInScope.Add(float64(inScope))
	p.metrics.RecordsOutScope.Add(float64(len(records) - inScope))
}
