// Package dataset reads observation tables from CSV and XLSX files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Options describes the layout of the input table.
type Options struct {
	// Header marks the first non-empty row as feature names.
	Header bool
	// LabelColumn is the zero-based column holding row labels, or -1.
	LabelColumn int
	// Sheet selects the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// Dataset is a table of observations.
type Dataset struct {
	// Features names each column of Rows. Nil without a header row.
	Features []string
	// Labels names each row. Nil without a label column.
	Labels []string
	// Rows holds one feature vector per observation.
	Rows [][]float64
}

// Load reads the table at path, choosing the reader by file extension.
func Load(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f, opts)
	case ".xlsx":
		return ReadXLSX(f, opts)
	default:
		return nil, fmt.Errorf("dataset: unsupported file extension %q", ext)
	}
}

// ReadCSV reads a comma-separated table.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return fromRecords(records, opts)
}

// ReadXLSX reads one worksheet of an Excel workbook.
func ReadXLSX(r io.Reader, opts Options) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("dataset: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: sheet %q: %w", sheet, err)
	}
	return fromRecords(rows, opts)
}

// fromRecords converts raw string cells into a Dataset. Blank rows are
// skipped; row numbers in errors are 1-based positions in the input.
func fromRecords(records [][]string, opts Options) (*Dataset, error) {
	ds := &Dataset{}
	width := -1
	headerPending := opts.Header

	for r, rec := range records {
		if isBlank(rec) {
			continue
		}
		rowNum := r + 1

		if headerPending {
			headerPending = false
			width = len(rec)
			for c, name := range rec {
				if c != opts.LabelColumn {
					ds.Features = append(ds.Features, strings.TrimSpace(name))
				}
			}
			continue
		}

		if width < 0 {
			width = len(rec)
		}
		if len(rec) > width {
			return nil, fmt.Errorf("dataset: row %d has %d columns, want %d", rowNum, len(rec), width)
		}
		if opts.LabelColumn >= width {
			return nil, fmt.Errorf("dataset: label column %d outside table of %d columns", opts.LabelColumn, width)
		}

		row := make([]float64, 0, width)
		for c := 0; c < width; c++ {
			var cell string
			if c < len(rec) {
				cell = strings.TrimSpace(rec[c])
			}
			if c == opts.LabelColumn {
				ds.Labels = append(ds.Labels, cell)
				continue
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d column %d: %w", rowNum, c+1, err)
			}
			row = append(row, v)
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, errors.New("dataset: no observations")
	}
	return ds, nil
}

// parseCell accepts numbers and the boolean words true/false and yes/no,
// which encode binary indicators as 1/0.
func parseCell(cell string) (float64, error) {
	switch strings.ToLower(cell) {
	case "":
		return 0, errors.New("missing value")
	case "true", "yes", "y":
		return 1, nil
	case "false", "no", "n":
		return 0, nil
	}
	return cast.ToFloat64E(cell)
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
