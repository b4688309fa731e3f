package core

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/roster/internal/member"
)

// PostExportHook runs after a successful export, e.g. to open the file in a
// viewer. Its error is logged and otherwise ignored.
type PostExportHook func(path string) error

type exportOptions struct {
	hook   PostExportHook
	logger *slog.Logger
}

// ExportOption configures Export.
type ExportOption func(*exportOptions)

// WithPostExport sets a best-effort hook run after the file is written.
func WithPostExport(hook PostExportHook) ExportOption {
	return func(o *exportOptions) { o.hook = hook }
}

// WithExportLogger sets the logger used for the export summary.
func WithExportLogger(logger *slog.Logger) ExportOption {
	return func(o *exportOptions) { o.logger = logger }
}

// Export writes records to path and returns the path written. Missing parent
// directories are created and an existing file is overwritten. Failures wrap
// ErrIOFailure.
func Export(records []member.Record, path string, opts ...ExportOption) (string, error) {
	o := exportOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" {
		path = DefaultFileName
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: creating directory %s: %v", ErrIOFailure, dir, err)
		}
	}

	if err := writeFile(path, records); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrIOFailure, path, err)
	}

	o.logger.Info("export finished", "path", path, "records", len(records))

	if o.hook != nil {
		if err := o.hook(path); err != nil {
			o.logger.Warn("export complete, but unable to open file automatically",
				"path", path,
				"error", err,
			)
		}
	}

	return path, nil
}

func writeFile(path string, records []member.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteRoster(f, records)
}

// WriteRoster writes the header and one line per record to w, in input order.
func WriteRoster(w io.Writer, records []member.Record) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := bw.WriteString(FormatLine(recordCells(r)) + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// recordCells returns a record's cells in column order, before escaping.
func recordCells(r member.Record) []string {
	cells := make([]string, ColumnCount)
	cells[ColName] = r.Name().String()
	cells[ColYear] = r.Year().String()
	cells[ColStudentNumber] = r.StudentNumber().String()
	cells[ColEmail] = r.Email().String()
	cells[ColPhone] = r.Phone().String()
	cells[ColDietaryRequirements] = r.DietaryRequirements().String()
	cells[ColRole] = r.Role().String()
	cells[ColTags] = member.JoinTags(r.Tags())
	return cells
}
