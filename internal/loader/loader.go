package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/observability"
)

// Source opens a named table for reading. Implementations return an error
// wrapping domain.ErrDataUnavailable when the object does not exist.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads tables from the local filesystem.
type FileSource struct{}

// Open opens the file at path.
func (FileSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, domain.ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Loader reads wide tables from a Source.
type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Loader over the given source.
func New(source Source, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{source: source, logger: logger, metrics: metrics}
}

// Load reads and parses one table.
func (l *Loader) Load(ctx context.Context, spec TableSpec) (domain.WideTable, error) {
	start := time.Now()

	rc, err := l.source.Open(ctx, spec.Object)
	if err != nil {
		return domain.WideTable{}, fmt.Errorf("load %s table: %w", spec.Name, err)
	}
	defer rc.Close()

	table, stats, err := ReadTable(rc, spec)
	if err != nil {
		return domain.WideTable{}, fmt.Errorf("load %s table: %w", spec.Name, err)
	}

	l.metrics.RowsLoaded.WithLabelValues(spec.Name).Add(float64(stats.Rows))
	l.metrics.RowsSkipped.WithLabelValues(spec.Name).Add(float64(stats.Skipped))
	l.metrics.LoadDuration.WithLabelValues(spec.Name).Observe(time.Since(start).Seconds())
	l.logger.Info("table loaded",
		"table", spec.Name,
		"object", spec.Object,
		"rows", stats.Rows,
		"skipped", stats.Skipped,
	)
	return table, nil
}

// LoadSession loads both tables and builds the session. Any failure, and in
// particular a missing table, returns no session at all.
func (l *Loader) LoadSession(ctx context.Context, sectors, fuels TableSpec) (*domain.Session, error) {
	sectorTable, err := l.Load(ctx, sectors)
	if err != nil {
		return nil, err
	}
	fuelTable, err := l.Load(ctx, fuels)
	if err != nil {
		return nil, err
	}

	s := domain.NewSession(sectorTable, fuelTable)
	l.metrics.SessionLoaded.Set(1)
	l.logger.Info("session loaded", "session_id", s.ID, "states", len(sectorTable.UniqueStates()))
	return s, nil
}
