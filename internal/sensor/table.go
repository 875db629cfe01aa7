package sensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults for the lab's Output.csv export.
const (
	DefaultFieldDelimiter  = ","
	DefaultRecordDelimiter = "\r\n"
)

// DefaultEnabledModules are the table rows holding the eight anchor modules.
// Rows 0 and 1 are headers.
var DefaultEnabledModules = []int{2, 3, 4, 5, 6, 7, 8, 9}

// Layout describes where the anchor rows live in a table and how wide they are.
type Layout struct {
	Rows            []int // Record indices; their order is the anchor order
	FieldDelimiter  string
	RecordDelimiter string

	// Fields is the expected column count. Rows with fewer are malformed and
	// extra trailing columns are dropped. Zero takes the width of the first
	// selected row and requires every other row to match it.
	Fields int
}

// DefaultLayout returns the layout of the lab export.
func DefaultLayout() Layout {
	return Layout{
		Rows:            append([]int(nil), DefaultEnabledModules...),
		FieldDelimiter:  DefaultFieldDelimiter,
		RecordDelimiter: DefaultRecordDelimiter,
		Fields:          int(NumAttributes),
	}
}

// ParseTable splits text into records, keeps the records at rowIndices and
// converts each of their fields to a float. The result is indexed
// [anchor][attribute], anchors in rowIndices order.
func ParseTable(text string, rowIndices []int, fieldDelimiter, recordDelimiter string) ([][]float64, error) {
	return Layout{
		Rows:            rowIndices,
		FieldDelimiter:  fieldDelimiter,
		RecordDelimiter: recordDelimiter,
	}.Parse(text)
}

// Parse applies the layout to table text. The first bad row or cell fails the
// whole table; nothing partial is returned.
func (l Layout) Parse(text string) ([][]float64, error) {
	if l.FieldDelimiter == "" || l.RecordDelimiter == "" {
		return nil, fmt.Errorf("empty delimiter")
	}

	records := strings.Split(text, l.RecordDelimiter)
	width := l.Fields
	out := make([][]float64, 0, len(l.Rows))

	// A missing row is a layout error and wins over bad data in earlier rows
	for _, row := range l.Rows {
		if row < 0 || row >= len(records) {
			return nil, &MalformedRowError{
				Row:    row,
				Reason: fmt.Sprintf("out of range, table has %d records", len(records)),
			}
		}
	}

	for _, row := range l.Rows {
		fields := strings.Split(records[row], l.FieldDelimiter)
		switch {
		case width == 0:
			width = len(fields)
		case len(fields) < width:
			return nil, &MalformedRowError{
				Row:    row,
				Reason: fmt.Sprintf("has %d fields, want %d", len(fields), width),
			}
		case l.Fields == 0 && len(fields) != width:
			return nil, &MalformedRowError{
				Row:    row,
				Reason: fmt.Sprintf("has %d fields, earlier rows have %d", len(fields), width),
			}
		}

		values := make([]float64, width)
		for i := range values {
			v, err := parseField(fields[i])
			if err != nil {
				return nil, &MalformedFieldError{Row: row, Field: i, Value: fields[i], Err: err}
			}
			values[i] = v
		}
		out = append(out, values)
	}

	return out, nil
}

// parseField accepts finite decimal numbers with surrounding blanks.
func parseField(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return v, nil
}
