package table

import "testing"

func loadSample(t *testing.T) *Table {
	t.Helper()
	tbl := New()
	tbl.Load([]string{"Name", "Age", "City"}, [][]string{
		{"John Doe", "30", "New York"},
		{"Jane Smith", "28", "San Francisco"},
		{"Bob Johnson", "35", "Chicago"},
	})
	return tbl
}

func checkRowLengths(t *testing.T, tbl *Table) {
	t.Helper()
	for i, r := range tbl.Rows() {
		if len(r) != tbl.ColumnCount() {
			t.Fatalf("row %d has %d fields, want %d", i, len(r), tbl.ColumnCount())
		}
	}
}

func equalRows(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
