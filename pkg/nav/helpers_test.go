package nav

import (
	"testing"

	"goocsv/pkg/table"
)

func newController(t *testing.T, headers []string, rows [][]string) *Controller {
	t.Helper()
	c := New(table.New())
	c.Load(headers, rows)
	return c
}

func threeRows(t *testing.T) *Controller {
	t.Helper()
	return newController(t, []string{"Name", "Age"}, [][]string{
		{"John", "30"},
		{"Jane", "28"},
		{"Bob", "35"},
	})
}

func always(d Decision) Decider {
	return func(DirtyRow) Decision { return d }
}

func mustCurrent(t *testing.T, c *Controller, want int) {
	t.Helper()
	got, ok := c.Current()
	if !ok || got != want {
		t.Fatalf("current=%d (ok=%v), want %d", got, ok, want)
	}
}

func mustField(t *testing.T, c *Controller, row, col int, want string) {
	t.Helper()
	got, err := c.Table().Field(row, col)
	if err != nil {
		t.Fatalf("Field(%d,%d): %v", row, col, err)
	}
	if got != want {
		t.Fatalf("Field(%d,%d)=%q, want %q", row, col, got, want)
	}
}

func checkInvariants(t *testing.T, c *Controller) {
	t.Helper()
	n := c.Table().ColumnCount()
	for i, r := range c.Table().Rows() {
		if len(r) != n {
			t.Fatalf("row %d has %d fields, want %d", i, len(r), n)
		}
	}
	if _, ok := c.Current(); ok && c.Buffer().Len() != n {
		t.Fatalf("buffer has %d fields, want %d", c.Buffer().Len(), n)
	}
}
