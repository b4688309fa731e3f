package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/JonMunkholm/roster/internal/member"
)

// utf8BOM is stripped from the start of a roster; spreadsheet tools add it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Importer reads roster files into validated records.
// The zero value is ready to use.
type Importer struct {
	// MaxFileSize rejects larger files with ErrFileTooLarge. Zero disables the check.
	MaxFileSize int64

	// Logger receives the per-run summary. Defaults to slog.Default().
	Logger *slog.Logger
}

// Import reads the roster at path using a zero-value Importer.
func Import(path string) (*ImportOutcome, error) {
	var im Importer
	return im.Import(path)
}

// Import reads and validates the roster at path.
//
// The returned error is non-nil only for file-level failures: ErrNotFound,
// ErrEmptyInput, ErrFileTooLarge or a read error. Rejected lines are reported
// in the outcome.
func (im *Importer) Import(path string) (*ImportOutcome, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat roster %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if im.MaxFileSize > 0 && info.Size() > im.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, info.Size(), im.MaxFileSize)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	return im.Parse(path, data)
}

// Parse validates roster content that is already in memory. name is only
// used for the outcome and log output.
func (im *Importer) Parse(name string, data []byte) (*ImportOutcome, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, name)
	}

	data = sanitizeUTF8(bytes.TrimPrefix(data, utf8BOM))
	lines := strings.Split(string(data), "\n")

	outcome := &ImportOutcome{Path: name}
	validator := newLineValidator()

	// lines[0] is the header and is never inspected.
	for i, line := range lines[1:] {
		lineNum := i + 2
		line = strings.TrimSuffix(line, "\r")

		if isBlankLine(line) {
			continue
		}
		outcome.Lines++

		cells := SplitLine(line)
		if len(cells) < ColumnCount {
			outcome.Diagnostics = append(outcome.Diagnostics, Diagnostic{
				Line:   lineNum,
				Reason: "Missing required columns.",
			})
			continue
		}

		fields := member.Fields{
			Name:                cellAt(cells, ColName),
			Year:                cellAt(cells, ColYear),
			StudentNumber:       cellAt(cells, ColStudentNumber),
			Email:               cellAt(cells, ColEmail),
			Phone:               cellAt(cells, ColPhone),
			DietaryRequirements: cellAt(cells, ColDietaryRequirements),
			Role:                cellAt(cells, ColRole),
			Tags:                member.ParseTags(cellAt(cells, ColTags)),
		}

		result := validator.Validate(lineNum, fields)
		if !result.Valid() {
			outcome.Diagnostics = append(outcome.Diagnostics, result.Diagnostics()...)
			continue
		}

		record, err := member.New(fields)
		if err != nil {
			outcome.Diagnostics = append(outcome.Diagnostics, Diagnostic{
				Line:   lineNum,
				Reason: fmt.Sprintf("Error creating person (%v)", err),
			})
			continue
		}

		outcome.Records = append(outcome.Records, record)
		validator.Register(record)
	}

	im.logger().Info("import finished",
		"path", name,
		"accepted", len(outcome.Records),
		"rejected_lines", outcome.RejectedLines(),
		"diagnostics", len(outcome.Diagnostics),
	)

	return outcome, nil
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger != nil {
		return im.Logger
	}
	return slog.Default()
}
