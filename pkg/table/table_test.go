package table

import (
	"errors"
	"testing"
)

func TestLoadNormalizesRowLength(t *testing.T) {
	tbl := New()
	tbl.Load([]string{"A", "B", "C"}, [][]string{
		{"1"},
		{"1", "2", "3", "4"},
		{},
	})
	checkRowLengths(t, tbl)

	want := [][]string{{"1", "", ""}, {"1", "2", "3"}, {"", "", ""}}
	if got := tbl.Rows(); !equalRows(got, want) {
		t.Fatalf("rows=%q, want %q", got, want)
	}
	if tbl.Modified() {
		t.Fatalf("fresh load must not be modified")
	}
	if got := tbl.VisibleCount(); got != 3 {
		t.Fatalf("visible count=%d, want 3", got)
	}
}

func TestLoadCopiesInput(t *testing.T) {
	headers := []string{"A"}
	rows := [][]string{{"x"}}
	tbl := New()
	tbl.Load(headers, rows)

	headers[0] = "changed"
	rows[0][0] = "changed"

	if h, _ := tbl.Header(0); h != "A" {
		t.Fatalf("header aliased input: %q", h)
	}
	if f, _ := tbl.Field(0, 0); f != "x" {
		t.Fatalf("row aliased input: %q", f)
	}
}

func TestSetField(t *testing.T) {
	tbl := loadSample(t)

	if err := tbl.SetField(1, 2, "Boston"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if f, _ := tbl.Field(1, 2); f != "Boston" {
		t.Fatalf("field=%q, want Boston", f)
	}
	if !tbl.Modified() {
		t.Fatalf("expected modified after SetField")
	}
}

func TestSetFieldOutOfRange(t *testing.T) {
	cases := []struct {
		row, col int
	}{
		{row: -1, col: 0},
		{row: 3, col: 0},
		{row: 0, col: -1},
		{row: 0, col: 3},
	}
	for _, tc := range cases {
		tbl := loadSample(t)
		before := tbl.Rows()
		err := tbl.SetField(tc.row, tc.col, "x")
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("SetField(%d,%d) err=%v, want ErrIndexOutOfRange", tc.row, tc.col, err)
		}
		if !equalRows(tbl.Rows(), before) || tbl.Modified() {
			t.Fatalf("SetField(%d,%d) changed state on failure", tc.row, tc.col)
		}
	}
}

func TestInsertRowAppendsBlank(t *testing.T) {
	tbl := New()
	tbl.Load([]string{"Name", "Age"}, [][]string{{"John", "30"}})

	if err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	want := [][]string{{"John", "30"}, {"", ""}}
	if got := tbl.Rows(); !equalRows(got, want) {
		t.Fatalf("rows=%q, want %q", got, want)
	}
	if !tbl.Modified() {
		t.Fatalf("expected modified after insert")
	}
}

func TestInsertRowPositions(t *testing.T) {
	tbl := loadSample(t)
	if err := tbl.InsertRow(0); err != nil {
		t.Fatalf("InsertRow(0): %v", err)
	}
	if err := tbl.InsertRow(2); err != nil {
		t.Fatalf("InsertRow(2): %v", err)
	}
	checkRowLengths(t, tbl)

	got := tbl.Rows()
	if len(got) != 5 {
		t.Fatalf("len=%d, want 5", len(got))
	}
	if got[0][0] != "" || got[1][0] != "John Doe" || got[2][0] != "" || got[3][0] != "Jane Smith" {
		t.Fatalf("unexpected order: %q", got)
	}
}

func TestInsertRowInvalidPosition(t *testing.T) {
	for _, pos := range []int{-1, 4, 100} {
		tbl := loadSample(t)
		if err := tbl.InsertRow(pos); !errors.Is(err, ErrInvalidPosition) {
			t.Fatalf("InsertRow(%d) err=%v, want ErrInvalidPosition", pos, err)
		}
		if tbl.Len() != 3 || tbl.Modified() {
			t.Fatalf("InsertRow(%d) changed state on failure", pos)
		}
	}
}

func TestInsertRowIntoEmptyTable(t *testing.T) {
	tbl := New()
	tbl.Load([]string{"Column 1"}, nil)
	if err := tbl.InsertRow(0); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("len=%d, want 1", tbl.Len())
	}
	checkRowLengths(t, tbl)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tbl := loadSample(t)
	headers, rows := tbl.Snapshot()
	headers[0] = "x"
	rows[0][0] = "x"

	if h, _ := tbl.Header(0); h != "Name" {
		t.Fatalf("snapshot aliased headers")
	}
	if f, _ := tbl.Field(0, 0); f != "John Doe" {
		t.Fatalf("snapshot aliased rows")
	}
}

func TestMarkSaved(t *testing.T) {
	tbl := loadSample(t)
	tbl.MarkModified()
	if !tbl.Modified() {
		t.Fatalf("expected modified")
	}
	tbl.MarkSaved()
	if tbl.Modified() {
		t.Fatalf("expected clean after MarkSaved")
	}
}
