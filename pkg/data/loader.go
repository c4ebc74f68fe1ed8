package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"outlierprep/pkg/core"
)

// ErrNoRows is returned for a CSV with a header but no data.
var ErrNoRows = errors.New("csv has no data rows")

// Table is a numeric dataset with an optional label column split out.
type Table struct {
	Headers     []string
	X           *core.Matrix
	Y           []float64 // nil when there is no label column
	LabelHeader string
}

// IsMissing reports whether a raw CSV cell counts as a missing value.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

func parseCell(s string) (float64, error) {
	if IsMissing(s) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ReadCSV reads a headed numeric CSV. Missing cells become NaN. labelCol is
// the index of the label column, or -1 for none.
func ReadCSV(r io.Reader, labelCol int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if labelCol >= len(header) {
		return nil, fmt.Errorf("label column %d out of range for %d columns", labelCol, len(header))
	}

	t := &Table{}
	for i, h := range header {
		if i == labelCol {
			t.LabelHeader = h
			continue
		}
		t.Headers = append(t.Headers, h)
	}
	if len(t.Headers) == 0 {
		return nil, errors.New("csv has no feature columns")
	}

	var X []float64
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		for i, s := range rec {
			v, err := parseCell(s)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line, header[i], err)
			}
			if i == labelCol {
				t.Y = append(t.Y, v)
			} else {
				X = append(X, v)
			}
		}
	}
	if line == 1 {
		return nil, ErrNoRows
	}

	cols := len(t.Headers)
	t.X = &core.Matrix{R: len(X) / cols, C: cols, Data: X}
	return t, nil
}

// WriteCSV writes the table with its label column last.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	headers := t.Headers
	if t.Y != nil {
		headers = append(append([]string(nil), headers...), t.LabelHeader)
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(headers))
	for i := 0; i < t.X.R; i++ {
		for j, v := range t.X.Row(i) {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if t.Y != nil {
			row[len(row)-1] = strconv.FormatFloat(t.Y[i], 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Drop returns a copy of the table without the rows whose mask entry is
// true. Labels stay aligned with their rows.
func (t *Table) Drop(mask []bool) *Table {
	out := &Table{Headers: t.Headers, LabelHeader: t.LabelHeader, X: t.X.Drop(mask)}
	if t.Y != nil {
		out.Y = make([]float64, 0, out.X.R)
		for i, drop := range mask {
			if !drop {
				out.Y = append(out.Y, t.Y[i])
			}
		}
	}
	return out
}
