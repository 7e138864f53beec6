// Package table implements the chained bucket table shared by the
// hashmap and hashset packages. A table is an array of slots, each
// holding a chain of entries whose keys hash to that slot. Once the
// ratio of entries to slots exceeds the load factor the slot array is
// doubled and every entry is relinked by its cached hash.
package table

import (
	"math/rand"

	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/hash"
)

// entry holds a key, its value, and the hash code computed for the
// key when the entry was created. The key and hash never change after
// creation; the value is overwritten in place.
type entry struct {
	hash uintptr
	key  interface{}
	val  interface{}
}

// chain is the ordered sequence of entries in one slot. Entries are
// held by pointer so a resize relinks them instead of copying.
type chain []*entry

func (c chain) remove(idx int) chain {
	copy(c[idx:], c[idx+1:])
	c[len(c)-1] = nil
	return c[:len(c)-1]
}

// truncate empties the chain keeping its backing array for reuse.
// Entry pointers are dropped so the entries can be collected.
func (c chain) truncate() chain {
	for i := range c {
		c[i] = nil
	}
	return c[:0]
}

// Table is a mutable hash table of chained buckets. It is not safe
// for concurrent use; the owner is assumed to have exclusive access.
type Table struct {
	bins       []chain
	size       int
	loadFactor float64
	seed       uintptr
}

// New returns a table with the given number of slots and growth
// threshold. The arguments are assumed validated by the caller.
// Each table hashes with its own random seed.
func New(capacity int, loadFactor float64) *Table {
	return &Table{
		bins:       make([]chain, capacity),
		loadFactor: loadFactor,
		seed:       uintptr(rand.Uint64()),
	}
}

// hashOf returns the hash code for a key under the table's seed. The
// nil key hashes to 0, which pins it to slot 0.
func (t *Table) hashOf(key interface{}) uintptr {
	if key == nil {
		return 0
	}
	return hash.Any(key, t.seed)
}

func index(h uintptr, capacity int) int {
	return int(h % uintptr(capacity))
}

// Put stores value under key and returns the value that was stored.
// When the key is already present its entry's value is overwritten in
// place. The table grows before Put returns if the insertion pushed
// the entry count over the load factor. A zero-slot table grows
// before indexing so the first Put always has a slot to land in.
func (t *Table) Put(key, value interface{}) interface{} {
	if len(t.bins) == 0 {
		t.grow()
	}
	h := t.hashOf(key)
	slot := index(h, len(t.bins))
	for _, e := range t.bins[slot] {
		if dyn.Equal(key, e.key) {
			e.val = value
			return value
		}
	}
	t.bins[slot] = append(t.bins[slot], &entry{
		hash: h,
		key:  key,
		val:  value,
	})
	t.size++
	if float64(t.size)/float64(len(t.bins)) > t.loadFactor {
		t.grow()
	}
	return value
}

// Find returns the value stored under key, matching by structural
// equality alone.
func (t *Table) Find(key interface{}) (interface{}, bool) {
	if len(t.bins) == 0 {
		return nil, false
	}
	for _, e := range t.bins[index(t.hashOf(key), len(t.bins))] {
		if dyn.Equal(key, e.key) {
			return e.val, true
		}
	}
	return nil, false
}

// Lookup returns the value stored under key, additionally requiring
// the entry's cached hash code to equal the probe key's current hash.
// A key type whose hash disagrees with its equality will not be found.
func (t *Table) Lookup(key interface{}) (interface{}, bool) {
	if len(t.bins) == 0 {
		return nil, false
	}
	h := t.hashOf(key)
	for _, e := range t.bins[index(h, len(t.bins))] {
		if dyn.Equal(key, e.key) && e.hash == h {
			return e.val, true
		}
	}
	return nil, false
}

// Remove detaches the entry for key from its chain and returns its
// value. The match is by structural equality alone.
func (t *Table) Remove(key interface{}) (interface{}, bool) {
	if len(t.bins) == 0 {
		return nil, false
	}
	slot := index(t.hashOf(key), len(t.bins))
	for i, e := range t.bins[slot] {
		if dyn.Equal(key, e.key) {
			t.bins[slot] = t.bins[slot].remove(i)
			t.size--
			return e.val, true
		}
	}
	return nil, false
}

// ContainsKey walks every slot and every chain entry looking for a
// structurally equal key. It does not probe by hash.
func (t *Table) ContainsKey(key interface{}) bool {
	found := false
	t.Range(func(k, _ interface{}) bool {
		found = dyn.Equal(key, k)
		return !found
	})
	return found
}

// ContainsValue walks every slot and every chain entry looking for a
// structurally equal value.
func (t *Table) ContainsValue(value interface{}) bool {
	found := false
	t.Range(func(_, v interface{}) bool {
		found = dyn.Equal(value, v)
		return !found
	})
	return found
}

// Clear empties every chain in place. The slot count and load factor
// are unchanged.
func (t *Table) Clear() {
	for i := range t.bins {
		t.bins[i] = t.bins[i].truncate()
	}
	t.size = 0
}

// Range calls fn for every entry in slot order then chain order
// within each slot, stopping early when fn returns false.
func (t *Table) Range(fn func(key, val interface{}) bool) {
	for _, c := range t.bins {
		for _, e := range c {
			if !fn(e.key, e.val) {
				return
			}
		}
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return t.size
}

// Cap returns the current number of slots.
func (t *Table) Cap() int {
	return len(t.bins)
}

// LoadFactor returns the growth threshold the table was created with.
func (t *Table) LoadFactor() float64 {
	return t.loadFactor
}

// grow doubles the slot count, treating zero slots as one, and
// relinks every existing entry into a fresh slot array by its cached
// hash. The entries themselves are moved, not recreated, so values
// overwritten in place stay visible through outstanding references.
func (t *Table) grow() {
	capacity := len(t.bins) * 2
	if capacity == 0 {
		capacity = 1
	}
	bins := make([]chain, capacity)
	for _, c := range t.bins {
		for _, e := range c {
			slot := index(e.hash, capacity)
			bins[slot] = append(bins[slot], e)
		}
	}
	t.bins = bins
}
