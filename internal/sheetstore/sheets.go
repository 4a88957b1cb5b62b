package sheetstore

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client implements TableStore on the Google Sheets API. All writes go
// through the retry policy as replayable operation descriptors; reads go
// through the TTL cache.
type Client struct {
	svc   *sheets.Service
	retry RetryPolicy
	cache *tableCache

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewClient(ctx context.Context, credentialsFile string, cacheTTL time.Duration) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading sheets credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing sheets credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{
		svc:      svc,
		retry:    DefaultRetryPolicy(),
		cache:    newTableCache(cacheTTL),
		sheetIDs: make(map[string]int64),
	}, nil
}

type opKind int

const (
	opAppend opKind = iota
	opUpdateRange
	opUpdateCell
	opDeleteRow
	opAddSheet
)

// writeOp is a pure description of one logical write. The retry loop replays
// the descriptor, so a retried attempt issues exactly the same call rather
// than re-evaluating state captured at submit time.
type writeOp struct {
	kind     opKind
	table    Table
	startRow int
	startCol int
	values   [][]string
}

func (c *Client) GetAllValues(ctx context.Context, table Table) ([][]string, error) {
	if values, ok := c.cache.get(table.key()); ok {
		return values, nil
	}
	values, err := c.fetch(ctx, table)
	if err != nil {
		return nil, err
	}
	c.cache.set(table.key(), values)
	return values, nil
}

func (c *Client) AppendRow(ctx context.Context, table Table, values []string) error {
	return c.mutate(ctx, writeOp{kind: opAppend, table: table, values: [][]string{values}})
}

func (c *Client) UpdateRange(ctx context.Context, table Table, startRow, startCol int, rows [][]string) error {
	return c.mutate(ctx, writeOp{kind: opUpdateRange, table: table, startRow: startRow, startCol: startCol, values: rows})
}

func (c *Client) UpdateCell(ctx context.Context, table Table, row, col int, value string) error {
	return c.mutate(ctx, writeOp{kind: opUpdateCell, table: table, startRow: row, startCol: col, values: [][]string{{value}}})
}

func (c *Client) DeleteRow(ctx context.Context, table Table, row int) error {
	return c.mutate(ctx, writeOp{kind: opDeleteRow, table: table, startRow: row})
}

func (c *Client) EnsureTable(ctx context.Context, table Table, header []string) error {
	_, found, err := c.lookupSheetID(ctx, table)
	if err != nil {
		return err
	}
	if !found {
		log.Info().Str("sheet", table.Sheet).Msg("Worksheet missing, creating")
		if err := c.mutate(ctx, writeOp{kind: opAddSheet, table: table}); err != nil {
			return err
		}
		return c.UpdateRange(ctx, table, 1, 1, [][]string{header})
	}
	values, err := c.fetch(ctx, table)
	if err != nil {
		return err
	}
	if len(values) == 0 || !headerMatches(values[0], header) {
		// Destructive header replace, not a migration.
		log.Warn().Str("sheet", table.Sheet).Msg("Header mismatch, overwriting header row")
		return c.UpdateRange(ctx, table, 1, 1, [][]string{header})
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, op writeOp) error {
	err := c.retry.run(func() error { return c.apply(ctx, op) })
	if err != nil {
		return err
	}
	c.cache.invalidate(op.table.key())
	return nil
}

func (c *Client) apply(ctx context.Context, op writeOp) error {
	switch op.kind {
	case opAppend:
		vr := &sheets.ValueRange{Values: toInterfaces(op.values)}
		_, err := c.svc.Spreadsheets.Values.
			Append(op.table.SpreadsheetID, rangeRef(op.table.Sheet, 1, 1, 1, len(op.values[0])), vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	case opUpdateRange, opUpdateCell:
		width := 0
		for _, row := range op.values {
			if len(row) > width {
				width = len(row)
			}
		}
		vr := &sheets.ValueRange{Values: toInterfaces(op.values)}
		ref := rangeRef(op.table.Sheet, op.startRow, op.startCol,
			op.startRow+len(op.values)-1, op.startCol+width-1)
		_, err := c.svc.Spreadsheets.Values.
			Update(op.table.SpreadsheetID, ref, vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return err
	case opDeleteRow:
		sheetID, found, err := c.lookupSheetID(ctx, op.table)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("sheetstore: worksheet %q not found", op.table.Sheet)
		}
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "ROWS",
						StartIndex: int64(op.startRow - 1),
						EndIndex:   int64(op.startRow),
					},
				},
			}},
		}
		_, err = c.svc.Spreadsheets.BatchUpdate(op.table.SpreadsheetID, req).Context(ctx).Do()
		return err
	case opAddSheet:
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: op.table.Sheet},
				},
			}},
		}
		resp, err := c.svc.Spreadsheets.BatchUpdate(op.table.SpreadsheetID, req).Context(ctx).Do()
		if err != nil {
			return err
		}
		for _, reply := range resp.Replies {
			if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
				c.mu.Lock()
				c.sheetIDs[op.table.key()] = reply.AddSheet.Properties.SheetId
				c.mu.Unlock()
			}
		}
		return nil
	}
	return fmt.Errorf("sheetstore: unknown operation kind %d", op.kind)
}

func (c *Client) fetch(ctx context.Context, table Table) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(table.SpreadsheetID, fmt.Sprintf("'%s'", table.Sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", table.Sheet, err)
	}
	values := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		values = append(values, row)
	}
	return values, nil
}

func (c *Client) lookupSheetID(ctx context.Context, table Table) (int64, bool, error) {
	c.mu.Lock()
	if id, ok := c.sheetIDs[table.key()]; ok {
		c.mu.Unlock()
		return id, true, nil
	}
	c.mu.Unlock()

	doc, err := c.svc.Spreadsheets.Get(table.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, false, fmt.Errorf("loading spreadsheet %q: %w", table.SpreadsheetID, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	var id int64
	for _, sh := range doc.Sheets {
		if sh.Properties == nil {
			continue
		}
		key := Table{SpreadsheetID: table.SpreadsheetID, Sheet: sh.Properties.Title}.key()
		c.sheetIDs[key] = sh.Properties.SheetId
		if sh.Properties.Title == table.Sheet {
			id = sh.Properties.SheetId
			found = true
		}
	}
	return id, found, nil
}

func rangeRef(sheet string, r1, c1, r2, c2 int) string {
	return fmt.Sprintf("'%s'!%s%d:%s%d", sheet, columnName(c1), r1, columnName(c2), r2)
}

func toInterfaces(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		out[i] = cells
	}
	return out
}
