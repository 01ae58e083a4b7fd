// Package table holds the in-memory CSV table: headers, rows and the
// per-column visibility flags. Every row always has exactly one field per
// header.
package table

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNotFound        = errors.New("not found")
)

type Table struct {
	headers  []string
	rows     [][]string
	visible  []bool
	modified bool
}

func New() *Table {
	return &Table{}
}

// Load replaces headers, rows and visibility. Rows are copied and padded or
// truncated to the header count.
func (t *Table) Load(headers []string, rows [][]string) {
	t.headers = append([]string(nil), headers...)
	t.rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		t.rows = append(t.rows, fitRow(r, len(t.headers)))
	}
	t.visible = make([]bool, len(t.headers))
	for i := range t.visible {
		t.visible[i] = true
	}
	t.modified = false
}

func fitRow(r []string, n int) []string {
	out := make([]string, n)
	copy(out, r)
	return out
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) ColumnCount() int { return len(t.headers) }

func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

func (t *Table) Header(col int) (string, error) {
	if err := t.checkColumn(col); err != nil {
		return "", err
	}
	return t.headers[col], nil
}

func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (t *Table) Row(row int) ([]string, error) {
	if err := t.checkRow(row); err != nil {
		return nil, err
	}
	return append([]string(nil), t.rows[row]...), nil
}

func (t *Table) Field(row, col int) (string, error) {
	if err := t.checkRow(row); err != nil {
		return "", err
	}
	if err := t.checkColumn(col); err != nil {
		return "", err
	}
	return t.rows[row][col], nil
}

func (t *Table) SetField(row, col int, value string) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	if err := t.checkColumn(col); err != nil {
		return err
	}
	t.rows[row][col] = value
	t.modified = true
	return nil
}

// InsertRow inserts a row of empty fields so that it ends up at index
// position. position may equal Len() to append.
func (t *Table) InsertRow(position int) error {
	if position < 0 || position > len(t.rows) {
		return fmt.Errorf("insert at %d (want 0..%d): %w", position, len(t.rows), ErrInvalidPosition)
	}
	blank := make([]string, len(t.headers))
	t.rows = append(t.rows, nil)
	copy(t.rows[position+1:], t.rows[position:])
	t.rows[position] = blank
	t.modified = true
	return nil
}

func (t *Table) Modified() bool { return t.modified }

func (t *Table) MarkModified() { t.modified = true }

func (t *Table) MarkSaved() { t.modified = false }

// Snapshot returns deep copies of headers and rows for serialization.
func (t *Table) Snapshot() ([]string, [][]string) {
	return t.Headers(), t.Rows()
}

func (t *Table) checkRow(row int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d (have %d): %w", row, len(t.rows), ErrIndexOutOfRange)
	}
	return nil
}

func (t *Table) checkColumn(col int) error {
	if col < 0 || col >= len(t.headers) {
		return fmt.Errorf("column %d (have %d): %w", col, len(t.headers), ErrIndexOutOfRange)
	}
	return nil
}
