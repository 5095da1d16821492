package field

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses a headered CSV stream into an all-float table. Every data
// cell must be numeric; the consumer reads the bytes from wherever they
// live (file, pipe), this helper only converts them.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
		if headers[i] == "" {
			return nil, fmt.Errorf("CSV header column %d is empty", i+1)
		}
	}

	cols := make([][]float64, len(headers))
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row+2, err)
		}
		row++
		for i, raw := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("CSV row %d, column %q: not a number: %q", row+1, headers[i], raw)
			}
			cols[i] = append(cols[i], v)
		}
	}

	table := NewTable(row)
	for i, name := range headers {
		if err := table.AddFloat(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// WriteCSV writes the table as a headered CSV stream. Integer columns are
// emitted without a decimal point.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	names := t.Names()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(names))
	for i := 0; i < t.Len(); i++ {
		for j, name := range names {
			c, _ := t.Column(name)
			switch c.Kind {
			case Int:
				record[j] = strconv.FormatInt(c.Ints[i], 10)
			default:
				record[j] = strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
