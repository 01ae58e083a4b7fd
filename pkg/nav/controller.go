// Package nav decides which row of a table is current and guards unsaved
// edits on that row.
//
// Edits are written straight into the table. The controller keeps a
// snapshot of the current row (the EditBuffer) and treats the row as dirty
// whenever any live field differs from it. Moving away from a dirty row
// needs a Decision from the caller.
package nav

import (
	"errors"
	"fmt"

	"goocsv/pkg/table"
)

var (
	ErrOutOfBounds          = errors.New("row out of bounds")
	ErrNoRow                = errors.New("no current row")
	ErrNavigationInProgress = errors.New("navigation already in progress")
)

type State int

const (
	NoRow State = iota
	RowClean
	RowDirty
)

func (s State) String() string {
	switch s {
	case NoRow:
		return "no row"
	case RowClean:
		return "clean"
	case RowDirty:
		return "dirty"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision resolves a navigation request that would leave a dirty row.
type Decision int

const (
	Commit Decision = iota
	Discard
	Cancel
)

func (d Decision) String() string {
	switch d {
	case Commit:
		return "commit"
	case Discard:
		return "discard"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

type Outcome int

const (
	Stayed Outcome = iota
	Moved
	Saved
)

func (o Outcome) String() string {
	switch o {
	case Stayed:
		return "stayed"
	case Moved:
		return "moved"
	case Saved:
		return "saved"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// DirtyRow describes the conflict handed to a Decider.
type DirtyRow struct {
	Row     int
	Target  int
	Changed []int
}

// Decider is called synchronously while a navigation request is pending.
type Decider func(DirtyRow) Decision

// Edge tells which end of the table a failed navigation ran into.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeFirst
	EdgeLast
)

type BoundsError struct {
	Current int
	Target  int
	Len     int
	Edge    Edge
}

func (e *BoundsError) Error() string {
	switch e.Edge {
	case EdgeFirst:
		return "already at the first row"
	case EdgeLast:
		return "already at the last row"
	}
	if e.Len == 0 {
		return "table has no rows"
	}
	return fmt.Sprintf("row %d is out of bounds", e.Target+1)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

type Controller struct {
	table      *table.Table
	current    int
	buf        EditBuffer
	navigating bool
}

// New wraps t. If t already has rows the first one becomes current.
func New(t *table.Table) *Controller {
	c := &Controller{table: t}
	c.reset()
	return c
}

func (c *Controller) Table() *table.Table { return c.table }

// Load replaces the table contents and starts over at row 0.
func (c *Controller) Load(headers []string, rows [][]string) {
	c.table.Load(headers, rows)
	c.reset()
}

func (c *Controller) reset() {
	c.buf.Clear()
	c.current = -1
	if c.table.Len() > 0 {
		c.current = 0
		c.snapshot()
	}
}

func (c *Controller) snapshot() {
	row, err := c.table.Row(c.current)
	if err != nil {
		c.buf.Clear()
		return
	}
	c.buf.Snapshot(row)
}

func (c *Controller) Current() (int, bool) {
	return c.current, c.current >= 0
}

func (c *Controller) State() State {
	if c.current < 0 {
		return NoRow
	}
	row, err := c.table.Row(c.current)
	if err != nil {
		return NoRow
	}
	if c.buf.Differs(row) {
		return RowDirty
	}
	return RowClean
}

func (c *Controller) Dirty() bool { return c.State() == RowDirty }

// Buffer exposes the snapshot of the current row.
func (c *Controller) Buffer() *EditBuffer { return &c.buf }

// ChangedColumns lists the absolute columns that differ from the snapshot.
func (c *Controller) ChangedColumns() []int {
	if c.current < 0 {
		return nil
	}
	row, err := c.table.Row(c.current)
	if err != nil {
		return nil
	}
	return c.buf.ChangedColumns(row)
}

// EditField writes value into the current row.
func (c *Controller) EditField(col int, value string) error {
	if c.navigating {
		return ErrNavigationInProgress
	}
	if c.current < 0 {
		return ErrNoRow
	}
	return c.table.SetField(c.current, col, value)
}

// RevertField restores one field of the current row from the snapshot and
// returns the restored value.
func (c *Controller) RevertField(col int) (string, error) {
	if c.navigating {
		return "", ErrNavigationInProgress
	}
	if c.current < 0 {
		return "", ErrNoRow
	}
	v, err := c.buf.RevertField(col)
	if err != nil {
		return "", err
	}
	if err := c.table.SetField(c.current, col, v); err != nil {
		return "", err
	}
	return v, nil
}

// RequestNavigate moves the current row by delta. A delta of 0 confirms the
// current row in place without consulting decide.
func (c *Controller) RequestNavigate(delta int, decide Decider) (Outcome, error) {
	if c.navigating {
		return Stayed, ErrNavigationInProgress
	}

	n := c.table.Len()
	target := c.current + delta
	if c.current < 0 || target < 0 || target >= n {
		return Stayed, c.boundsError(target, n)
	}

	if delta != 0 && c.State() == RowDirty {
		d := c.ask(decide, target)
		switch d {
		case Commit:
		case Discard:
			if err := c.restore(); err != nil {
				return Stayed, err
			}
		case Cancel:
			return Stayed, nil
		default:
			return Stayed, fmt.Errorf("unknown decision %v", d)
		}
	}

	c.current = target
	c.snapshot()
	if delta == 0 {
		return Saved, nil
	}
	return Moved, nil
}

func (c *Controller) ask(decide Decider, target int) Decision {
	if decide == nil {
		return Cancel
	}
	c.navigating = true
	defer func() { c.navigating = false }()
	return decide(DirtyRow{Row: c.current, Target: target, Changed: c.ChangedColumns()})
}

func (c *Controller) restore() error {
	for col, v := range c.buf.RevertAll() {
		if err := c.table.SetField(c.current, col, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) boundsError(target, n int) *BoundsError {
	e := &BoundsError{Current: c.current, Target: target, Len: n}
	if c.current < 0 || n == 0 {
		return e
	}
	switch {
	case target < 0:
		e.Edge = EdgeFirst
	case target >= n:
		e.Edge = EdgeLast
	}
	return e
}

// InsertRow inserts a blank row at position and makes it current. Edits on
// the previous row stay in the table as they are.
func (c *Controller) InsertRow(position int) error {
	if c.navigating {
		return ErrNavigationInProgress
	}
	if err := c.table.InsertRow(position); err != nil {
		return err
	}
	c.current = position
	c.snapshot()
	return nil
}

// Flush confirms the current row in place and returns the table contents
// for saving.
func (c *Controller) Flush() ([]string, [][]string, error) {
	if c.current >= 0 {
		if _, err := c.RequestNavigate(0, nil); err != nil {
			return nil, nil, err
		}
	}
	headers, rows := c.table.Snapshot()
	return headers, rows, nil
}
