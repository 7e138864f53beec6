package table

// Iterator is a mutable cursor over a table in slot order then chain
// order. It captures the slot array it was created from, so it must
// not be used across mutations of the table.
type Iterator struct {
	bins []chain
	slot int
	cur  int
}

// Iterator returns a cursor positioned before the first entry.
func (t *Table) Iterator() Iterator {
	return Iterator{bins: t.bins}
}

// HasNext is true when there are more entries to be iterated over.
func (i *Iterator) HasNext() bool {
	for i.slot < len(i.bins) {
		if i.cur < len(i.bins[i.slot]) {
			return true
		}
		i.slot++
		i.cur = 0
	}
	return false
}

// Next provides the next key value pair and increments the cursor.
func (i *Iterator) Next() (k, v interface{}) {
	e := i.bins[i.slot][i.cur]
	i.cur++
	return e.key, e.val
}
