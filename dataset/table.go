package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Table is a parsed keyed table.
type Table struct {
	// Header holds the column names, or nil if the input had no header row.
	Header []string
	// Keys holds the first column of every row.
	Keys []int64
	// Rows holds the remaining columns of every row.
	Rows [][]float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Keys) }

// Width returns the number of feature columns (the key excluded).
func (t *Table) Width() int {
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	if len(t.Header) > 0 {
		return len(t.Header) - 1
	}
	return 0
}

// ReadTable parses CSV from r.
//
// The first record is treated as a header unless its first field parses as a
// number. Keys may be written as floats ("3.0") as long as they are integral.
// Every row must have the same number of fields and at least one feature.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	t := &Table{}
	width := -1
	records := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &ErrMalformedRow{Line: perr.Line, Column: perr.Column, Err: perr.Err}
			}
			return nil, err
		}
		records++
		line, _ := cr.FieldPos(0)

		if len(record) < 2 {
			return nil, &ErrMalformedRow{Line: line, Err: errors.New("need a key and at least one feature")}
		}

		if records == 1 && !isNumeric(record[0]) {
			t.Header = append([]string(nil), record...)
			width = len(record)
			continue
		}

		if width < 0 {
			width = len(record)
		}
		if len(record) != width {
			return nil, &ErrMalformedRow{Line: line, Err: fmt.Errorf("expected %d fields, got %d", width, len(record))}
		}

		key, err := parseKey(record[0])
		if err != nil {
			return nil, &ErrMalformedRow{Line: line, Column: 1, Err: err}
		}

		row := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &ErrMalformedRow{Line: line, Column: j + 2, Err: err}
			}
			row[j] = v
		}

		t.Keys = append(t.Keys, key)
		t.Rows = append(t.Rows, row)
	}

	if records == 0 {
		return nil, fmt.Errorf("%w: no records", ErrMalformedTable)
	}
	return t, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func parseKey(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if k, err := strconv.ParseInt(s, 10, 64); err == nil {
		return k, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("key %q is not an integer", s)
	}
	return int64(f), nil
}
