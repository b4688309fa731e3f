package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/member"
	"github.com/JonMunkholm/roster/internal/metrics"
	"github.com/JonMunkholm/roster/internal/store"
	"github.com/JonMunkholm/roster/internal/viewer"
	"github.com/google/uuid"
)

// Service provides the roster operations used by the web server, the CLI and
// the file watcher. It is safe for concurrent use.
type Service struct {
	store   store.Store
	cfg     config.RosterConfig
	limiter *ImportLimiter
	history *History
	opener  PostExportHook
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithOpener replaces the viewer used when OpenAfterExport is set.
func WithOpener(hook PostExportHook) ServiceOption {
	return func(s *Service) { s.opener = hook }
}

// NewService creates a Service backed by st.
func NewService(st store.Store, cfg config.RosterConfig, opts ...ServiceOption) *Service {
	if cfg.DefaultFile == "" {
		cfg.DefaultFile = DefaultFileName
	}
	if cfg.ExportFile == "" {
		cfg.ExportFile = DefaultFileName
	}

	s := &Service{
		store:   st,
		cfg:     cfg,
		limiter: NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		history: NewHistory(cfg.HistorySize),
		opener:  viewer.Open,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultImportPath is the roster imported when no path is given.
func (s *Service) DefaultImportPath() string {
	return s.cfg.DefaultFile
}

// ImportMembers imports the roster at path into the store. An empty path
// selects the configured default file. An explicit path must end in .csv.
func (s *Service) ImportMembers(ctx context.Context, path string) (ImportSummary, error) {
	if path == "" {
		path = s.cfg.DefaultFile
	} else if !isCSV(path) {
		metrics.RecordImportError()
		return ImportSummary{}, fmt.Errorf("%w: %s", ErrInvalidFileType, path)
	}

	return s.run(ctx, path, func(im *Importer) (*ImportOutcome, error) {
		return im.Import(path)
	})
}

// ImportData imports roster content that was uploaded rather than read from
// disk. name must end in .csv.
func (s *Service) ImportData(ctx context.Context, name string, data []byte) (ImportSummary, error) {
	if !isCSV(name) {
		metrics.RecordImportError()
		return ImportSummary{}, fmt.Errorf("%w: %s", ErrInvalidFileType, name)
	}
	if s.cfg.MaxFileSize > 0 && int64(len(data)) > s.cfg.MaxFileSize {
		metrics.RecordImportError()
		return ImportSummary{}, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, name, len(data), s.cfg.MaxFileSize)
	}

	return s.run(ctx, name, func(im *Importer) (*ImportOutcome, error) {
		return im.Parse(name, data)
	})
}

// run executes one import under the limiter and reconciles the result.
func (s *Service) run(ctx context.Context, path string, read func(*Importer) (*ImportOutcome, error)) (ImportSummary, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		metrics.RecordImportError()
		return ImportSummary{}, err
	}
	defer s.limiter.Release()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithFields(ctx, "path", path)
	start := s.now()

	im := &Importer{MaxFileSize: s.cfg.MaxFileSize, Logger: logger}
	outcome, err := read(im)
	if err != nil {
		metrics.RecordImportError()
		logger.Warn("import failed", "error", err)
		return ImportSummary{}, err
	}

	added, duplicates, err := s.reconcile(ctx, outcome.Records)
	if err != nil {
		metrics.RecordImportError()
		logger.Error("import reconciliation failed", "added", added, "error", err)
		return ImportSummary{}, err
	}

	summary := ImportSummary{
		RunID:      runID,
		Path:       path,
		Added:      added,
		Duplicates: duplicates,
		Rejected:   outcome.RejectedLines(),
		Report:     outcome.Report(),
		Duration:   s.now().Sub(start),
		StartedAt:  start,
	}

	s.history.Add(summary)
	metrics.RecordImport(summary.Added, summary.Duplicates, summary.Rejected, summary.Duration)
	logger.Info("import reconciled",
		"added", summary.Added,
		"duplicates", summary.Duplicates,
		"rejected_lines", summary.Rejected,
		"duration", summary.Duration,
	)

	return summary, nil
}

// reconcile adds records the store does not already hold. Members already
// present, or inserted concurrently, count as duplicates.
func (s *Service) reconcile(ctx context.Context, records []member.Record) (added, duplicates int, err error) {
	for _, r := range records {
		exists, err := s.store.Has(ctx, r)
		if err != nil {
			return added, duplicates, err
		}
		if exists {
			duplicates++
			continue
		}

		if err := s.store.Add(ctx, r); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				duplicates++
				continue
			}
			return added, duplicates, err
		}
		added++
	}
	return added, duplicates, nil
}

// ExportMembers writes every stored member to path, or to the configured
// export file when path is empty.
func (s *Service) ExportMembers(ctx context.Context, path string) (ExportSummary, error) {
	if path == "" {
		path = s.cfg.ExportFile
	}
	logger := logging.WithFields(ctx, "path", path)
	start := s.now()

	records, err := s.store.List(ctx)
	if err != nil {
		metrics.RecordExportError()
		return ExportSummary{}, fmt.Errorf("listing members: %w", err)
	}

	opts := []ExportOption{WithExportLogger(logger)}
	if s.cfg.OpenAfterExport && s.opener != nil {
		opts = append(opts, WithPostExport(s.opener))
	}

	written, err := Export(records, path, opts...)
	if err != nil {
		metrics.RecordExportError()
		logger.Error("export failed", "error", err)
		return ExportSummary{}, err
	}

	metrics.RecordExport(len(records))
	return ExportSummary{
		Path:     written,
		Records:  len(records),
		Duration: s.now().Sub(start),
	}, nil
}

// WriteMembers streams every stored member as a roster to w.
func (s *Service) WriteMembers(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing members: %w", err)
	}
	if err := WriteRoster(w, records); err != nil {
		metrics.RecordExportError()
		return 0, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	metrics.RecordExport(len(records))
	return len(records), nil
}

// Members returns every stored member in insertion order.
func (s *Service) Members(ctx context.Context) ([]member.Record, error) {
	return s.store.List(ctx)
}

// MemberCount returns the number of stored members.
func (s *Service) MemberCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// History returns recent import runs, newest first.
func (s *Service) History() []ImportSummary {
	return s.history.List()
}

// Run returns a recorded import run by ID.
func (s *Service) Run(runID string) (ImportSummary, bool) {
	return s.history.Get(runID)
}

// LimiterStatus reports import slot usage.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until running imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
