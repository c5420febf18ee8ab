package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one source row keyed by header name. A column missing from a
// short row is absent from the map.
type Record map[string]string

// RecordSource yields records lazily. Next returns io.EOF after the last
// record. Sources cannot be rewound; open the file again to start over.
type RecordSource interface {
	Next() (Record, error)
	Close() error
}

var (
	// ErrUnsupportedFormat is returned by OpenSource for extensions other than
	// .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrMalformedRow marks a row the source could not parse. The source
	// stays usable and the next call moves on to the following row.
	ErrMalformedRow = errors.New("malformed row")
)

// Extensions lists the supported file extensions in lookup order.
var Extensions = []string{".csv", ".xlsx"}

// OpenSource opens path with the reader matching its extension.
func OpenSource(path string) (RecordSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, err := NewCSVSource(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return src, nil
	case ".xlsx":
		return openXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ResolvePath finds base in dir with the first supported extension that
// exists. When none exists the CSV path is returned so that opening it
// reports the missing file.
func ResolvePath(dir, base string) string {
	for _, ext := range Extensions {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, base+Extensions[0])
}

type csvSource struct {
	r      *csv.Reader
	closer io.Closer
	header []string
}

// NewCSVSource reads the header line from rc. An empty input is a valid
// source with no records.
func NewCSVSource(rc io.ReadCloser) (RecordSource, error) {
	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &csvSource{r: r, closer: rc}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	return &csvSource{r: r, closer: rc, header: normalizeHeader(header)}, nil
}

func (s *csvSource) Next() (Record, error) {
	if s.header == nil {
		return nil, io.EOF
	}

	row, err := s.r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, parseErr)
		}
		return nil, err
	}

	return toRecord(s.header, row), nil
}

func (s *csvSource) Close() error {
	return s.closer.Close()
}

type xlsxSource struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
}

// openXLSX streams the first sheet of a workbook; its first row is the header.
func openXLSX(path string) (RecordSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	src := &xlsxSource{file: f, rows: rows}
	if rows.Next() {
		header, err := rows.Columns()
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("read header: %w", err)
		}
		src.header = normalizeHeader(header)
	}

	return src, nil
}

func (s *xlsxSource) Next() (Record, error) {
	if s.header == nil {
		return nil, io.EOF
	}

	for s.rows.Next() {
		row, err := s.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		// Spreadsheets often carry trailing empty rows.
		if len(row) == 0 {
			continue
		}
		return toRecord(s.header, row), nil
	}

	if err := s.rows.Error(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (s *xlsxSource) Close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return rowsErr
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func toRecord(header, row []string) Record {
	rec := make(Record, len(header))
	for i, h := range header {
		if i >= len(row) {
			break
		}
		rec[h] = row[i]
	}
	return rec
}
