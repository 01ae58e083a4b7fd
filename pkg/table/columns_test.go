package table

import (
	"errors"
	"testing"
)

func TestToAbsoluteSkipsHidden(t *testing.T) {
	tbl := loadSample(t)
	if err := tbl.Toggle(1); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	cases := []struct {
		visible int
		want    int
	}{
		{visible: 0, want: 0},
		{visible: 1, want: 2},
	}
	for _, tc := range cases {
		got, err := tbl.ToAbsolute(tc.visible)
		if err != nil || got != tc.want {
			t.Fatalf("ToAbsolute(%d)=%d,%v want %d", tc.visible, got, err, tc.want)
		}
	}

	for _, v := range []int{-1, 2, 10} {
		if _, err := tbl.ToAbsolute(v); !errors.Is(err, ErrNotFound) {
			t.Fatalf("ToAbsolute(%d) err=%v, want ErrNotFound", v, err)
		}
	}
}

func TestToVisible(t *testing.T) {
	tbl := loadSample(t)
	if err := tbl.Toggle(0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if _, err := tbl.ToVisible(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("hidden column err=%v, want ErrNotFound", err)
	}
	if got, err := tbl.ToVisible(2); err != nil || got != 1 {
		t.Fatalf("ToVisible(2)=%d,%v want 1", got, err)
	}
	if _, err := tbl.ToVisible(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("absent column err=%v, want ErrIndexOutOfRange", err)
	}
}

func TestVisibleRoundTrip(t *testing.T) {
	tbl := New()
	tbl.Load([]string{"a", "b", "c", "d", "e"}, nil)
	_ = tbl.Toggle(1)
	_ = tbl.Toggle(3)

	for _, abs := range tbl.VisibleColumns() {
		v, err := tbl.ToVisible(abs)
		if err != nil {
			t.Fatalf("ToVisible(%d): %v", abs, err)
		}
		back, err := tbl.ToAbsolute(v)
		if err != nil || back != abs {
			t.Fatalf("round trip %d -> %d -> %d (%v)", abs, v, back, err)
		}
	}
}

func TestToggleKeepsData(t *testing.T) {
	tbl := loadSample(t)
	before := tbl.Rows()

	for col := 0; col < tbl.ColumnCount(); col++ {
		if err := tbl.Toggle(col); err != nil {
			t.Fatalf("Toggle(%d): %v", col, err)
		}
	}
	if tbl.VisibleCount() != 0 {
		t.Fatalf("expected every column hidden")
	}
	if !equalRows(tbl.Rows(), before) {
		t.Fatalf("toggle changed row data")
	}
	if tbl.Modified() {
		t.Fatalf("toggle must not mark the table modified")
	}

	_ = tbl.Toggle(2)
	if got := tbl.VisibleColumns(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("visible columns=%v, want [2]", got)
	}
}

func TestToggleOutOfRange(t *testing.T) {
	tbl := loadSample(t)
	for _, col := range []int{-1, 3} {
		if err := tbl.Toggle(col); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Toggle(%d) err=%v, want ErrIndexOutOfRange", col, err)
		}
		if err := tbl.SetVisible(col, false); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("SetVisible(%d) err=%v, want ErrIndexOutOfRange", col, err)
		}
	}
	if tbl.VisibleCount() != 3 {
		t.Fatalf("failed toggles changed visibility")
	}
}

func TestLoadResetsVisibility(t *testing.T) {
	tbl := loadSample(t)
	_ = tbl.SetVisible(0, false)
	tbl.Load([]string{"x", "y"}, nil)
	if !tbl.Visible(0) || !tbl.Visible(1) || tbl.Visible(2) {
		t.Fatalf("visibility not reset by Load")
	}
}
