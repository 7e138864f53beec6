package hashmap

import "jsouthworth.net/go/mutable/internal/table"

// Iterator provides a mutable iterator over the map. This allows
// efficient, heap allocation-less access to the contents. Iterators
// are not safe for concurrent access and are invalidated by any
// mutation of the map, including the resize a Put may trigger.
func (m *Map) Iterator() Iterator {
	return Iterator{it: m.t.Iterator()}
}

// Iterator is a mutable cursor over the map's buckets in slot order
// then chain order.
type Iterator struct {
	it table.Iterator
}

// HasNext is true when there are more entries to be iterated over.
func (i *Iterator) HasNext() bool {
	return i.it.HasNext()
}

// Next provides the next key value pair and increments the cursor.
func (i *Iterator) Next() (k, v interface{}) {
	return i.it.Next()
}
