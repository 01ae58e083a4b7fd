package nav

import (
	"fmt"

	"goocsv/pkg/table"
)

// EditBuffer keeps the last confirmed values of the current row. It holds a
// single snapshot; reverting always goes back to that snapshot.
type EditBuffer struct {
	fields []string
	valid  bool
}

func (b *EditBuffer) Snapshot(row []string) {
	b.fields = append(b.fields[:0], row...)
	b.valid = true
}

func (b *EditBuffer) RevertField(col int) (string, error) {
	if !b.valid || col < 0 || col >= len(b.fields) {
		return "", fmt.Errorf("snapshot column %d (have %d): %w", col, len(b.fields), table.ErrIndexOutOfRange)
	}
	return b.fields[col], nil
}

func (b *EditBuffer) RevertAll() []string {
	return append([]string(nil), b.fields...)
}

func (b *EditBuffer) Differs(row []string) bool {
	return len(b.ChangedColumns(row)) > 0
}

// ChangedColumns compares every field of row against the snapshot.
func (b *EditBuffer) ChangedColumns(row []string) []int {
	var changed []int
	for i := range b.fields {
		if i >= len(row) || row[i] != b.fields[i] {
			changed = append(changed, i)
		}
	}
	return changed
}

func (b *EditBuffer) Len() int { return len(b.fields) }

func (b *EditBuffer) Valid() bool { return b.valid }

func (b *EditBuffer) Clear() {
	b.fields = nil
	b.valid = false
}
