package sheetstore

import (
	"context"
	"strings"
)

// Table names one worksheet inside one spreadsheet document.
type Table struct {
	SpreadsheetID string
	Sheet         string
}

func (t Table) key() string {
	return t.SpreadsheetID + "!" + t.Sheet
}

// TableStore is the tabular storage boundary: named tables of rows under a
// header. Row and column indexes are 1-based, matching spreadsheet
// coordinates. Implementations own durability; there is no transaction or
// rollback across calls.
type TableStore interface {
	// GetAllValues returns every row of the table, header included.
	GetAllValues(ctx context.Context, table Table) ([][]string, error)
	AppendRow(ctx context.Context, table Table, values []string) error
	UpdateRange(ctx context.Context, table Table, startRow, startCol int, rows [][]string) error
	UpdateCell(ctx context.Context, table Table, row, col int, value string) error
	DeleteRow(ctx context.Context, table Table, row int) error
	// EnsureTable creates the table if missing and forces the header row to
	// the expected one. A mismatched existing header is overwritten in place,
	// not migrated.
	EnsureTable(ctx context.Context, table Table, header []string) error
}

// Row maps lower-cased header fields to cell values.
type Row map[string]string

// Records converts raw values into header-keyed rows, dropping the header
// row itself. Short data rows read as empty strings for the missing cells.
func Records(values [][]string) []Row {
	if len(values) < 2 {
		return nil
	}
	header := normalizeHeader(values[0])
	rows := make([]Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make(Row, len(header))
		for i, field := range header {
			if i < len(raw) {
				row[field] = raw[i]
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// headerMatches compares an existing header row against the expected one,
// case-insensitively. Cells beyond the expected header are ignored so that
// out-of-band row 1 data, like the participant edit counter in Z1, does not
// read as a header mismatch.
func headerMatches(current, expected []string) bool {
	if len(current) < len(expected) {
		return false
	}
	cur := normalizeHeader(current[:len(expected)])
	exp := normalizeHeader(expected)
	for i := range cur {
		if cur[i] != exp[i] {
			return false
		}
	}
	return true
}

// columnName converts a 1-based column index to its A1 letter form.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
