package table

import "fmt"

// ToAbsolute maps the k-th visible column to its index in a row.
func (t *Table) ToAbsolute(visible int) (int, error) {
	if visible >= 0 {
		k := 0
		for i, v := range t.visible {
			if !v {
				continue
			}
			if k == visible {
				return i, nil
			}
			k++
		}
	}
	return -1, fmt.Errorf("visible column %d (have %d): %w", visible, t.VisibleCount(), ErrNotFound)
}

// ToVisible maps a row index to its position among the shown columns.
func (t *Table) ToVisible(absolute int) (int, error) {
	if err := t.checkColumn(absolute); err != nil {
		return -1, err
	}
	if !t.visible[absolute] {
		return -1, fmt.Errorf("column %d is hidden: %w", absolute, ErrNotFound)
	}
	k := 0
	for i := 0; i < absolute; i++ {
		if t.visible[i] {
			k++
		}
	}
	return k, nil
}

func (t *Table) Toggle(absolute int) error {
	if err := t.checkColumn(absolute); err != nil {
		return err
	}
	t.visible[absolute] = !t.visible[absolute]
	return nil
}

func (t *Table) SetVisible(absolute int, v bool) error {
	if err := t.checkColumn(absolute); err != nil {
		return err
	}
	t.visible[absolute] = v
	return nil
}

func (t *Table) Visible(absolute int) bool {
	return absolute >= 0 && absolute < len(t.visible) && t.visible[absolute]
}

func (t *Table) VisibleCount() int {
	n := 0
	for _, v := range t.visible {
		if v {
			n++
		}
	}
	return n
}

// VisibleColumns lists the absolute indices of shown columns in order.
func (t *Table) VisibleColumns() []int {
	cols := make([]int, 0, len(t.visible))
	for i, v := range t.visible {
		if v {
			cols = append(cols, i)
		}
	}
	return cols
}
