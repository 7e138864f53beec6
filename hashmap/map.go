package hashmap // import "jsouthworth.net/go/mutable/hashmap"

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/hash"
	"jsouthworth.net/go/mutable/hashset"
	"jsouthworth.net/go/mutable/internal/table"
	"jsouthworth.net/go/seq"
)

const (
	// DefaultCapacity is the number of bucket slots a map starts
	// with when none is specified.
	DefaultCapacity = 16
	// DefaultLoadFactor is the size to capacity ratio beyond
	// which the bucket table grows.
	DefaultLoadFactor = 0.75
)

// ErrNotFound is returned by Get and Remove when the map holds no
// entry for the requested key.
var ErrNotFound = errors.New("hashmap: key not found")

// ErrInvalidArgument is returned by Make when the requested capacity
// or load factor is out of range.
var ErrInvalidArgument = errors.New("hashmap: invalid argument")

var errOddElements = errors.New("must supply an even number of elements")
var errRangeSig = errors.New("Range requires a function: func(k kT, v vT) bool or func(k kT, v vT)")

// Entry is a map entry. Each entry consists of a key and value.
type Entry interface {
	Key() interface{}
	Value() interface{}
}

// EntryNew returns an Entry. Entries are detached values; they carry
// no connection to any map.
func EntryNew(key, value interface{}) Entry {
	return entry{key: key, value: value}
}

type entry struct {
	key   interface{}
	value interface{}
}

func (e entry) Key() interface{} {
	return e.key
}

func (e entry) Value() interface{} {
	return e.value
}

func (e entry) String() string {
	return fmt.Sprintf("[%v %v]", e.key, e.value)
}

// Equal tests entries by the structural equality of their keys and
// values so that entries are useful as set elements.
func (e entry) Equal(o interface{}) bool {
	other, ok := o.(entry)
	return ok && dyn.Equal(e.key, other.key) &&
		dyn.Equal(e.value, other.value)
}

// Hash folds the key and value hashes so equal entries hash equally.
func (e entry) Hash() uintptr {
	var h uintptr
	if e.key != nil {
		h = hash.Any(e.key, 0)
	}
	if e.value != nil {
		h = hash.Any(e.value, h)
	}
	return h
}

// Map is a mutable map of chained buckets. All operations mutate the
// map in place; it assumes exclusive, sequential access by one owner
// and is not safe for concurrent use.
type Map struct {
	t *table.Table
}

// Make returns a new empty map with the given initial capacity and
// load factor. It fails with ErrInvalidArgument if the capacity is
// negative or the load factor is not a positive number. A capacity of
// zero is permitted; the bucket table then grows to one slot on the
// first Put.
func Make(capacity int, loadFactor float64) (*Map, error) {
	switch {
	case capacity < 0:
		return nil, fmt.Errorf("%w: negative capacity %d",
			ErrInvalidArgument, capacity)
	case loadFactor <= 0 || math.IsNaN(loadFactor):
		return nil, fmt.Errorf("%w: load factor %v",
			ErrInvalidArgument, loadFactor)
	}
	return &Map{t: table.New(capacity, loadFactor)}, nil
}

// Empty returns a new empty map with the default capacity of 16 and
// load factor of 0.75.
func Empty() *Map {
	m, _ := Make(DefaultCapacity, DefaultLoadFactor)
	return m
}

// New converts a list of elements to a map by associating them
// pairwise. New will panic if the number of elements is not even.
func New(elems ...interface{}) *Map {
	if len(elems)%2 != 0 {
		panic(errOddElements)
	}
	out := Empty()
	for i := 0; i < len(elems); i += 2 {
		out.Put(elems[i], elems[i+1])
	}
	return out
}

// From will convert many different go types to a mutable map.
// Converting some types is more efficient than others and the
// mechanisms are described below.
//
// *Map:
//    A new map with the same capacity and load factor is created and the entries are copied into it with PutAll.
// map[interface{}]interface{}:
//    Converted directly by looping over the map and calling Put on an empty map.
// []Entry:
//    The entries are looped over and Put is called on an empty map.
// []interface{}:
//    The elements are passed to New.
// map[kT]vT:
//    Reflection is used to loop over the entries of the map and Put them into an empty map.
// []T:
//    Reflection is used to convert the slice to []interface{} and then passed to New.
func From(value interface{}) *Map {
	switch v := value.(type) {
	case *Map:
		out, _ := Make(v.Capacity(), v.LoadFactor())
		out.PutAll(v)
		return out
	case map[interface{}]interface{}:
		out := Empty()
		for key, val := range v {
			out.Put(key, val)
		}
		return out
	case []Entry:
		out := Empty()
		for _, entry := range v {
			out.Put(entry.Key(), entry.Value())
		}
		return out
	case []interface{}:
		return New(v...)
	default:
		return mapFromReflection(value)
	}
}

func mapFromReflection(value interface{}) *Map {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Map:
		out := Empty()
		for _, key := range v.MapKeys() {
			val := v.MapIndex(key)
			out.Put(key.Interface(), val.Interface())
		}
		return out
	case reflect.Slice:
		sl := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			sl[i] = elem.Interface()
		}
		return New(sl...)
	default:
		return Empty()
	}
}

// Put stores value under key and returns the value that was stored.
// When the key is already present its entry's value is overwritten in
// place without changing the map's length. Note that the returned
// value is the one just stored, not the displaced one; this differs
// from conventional map put contracts and is kept deliberately.
// The nil key is a valid key.
func (m *Map) Put(key, value interface{}) interface{} {
	return m.t.Put(key, value)
}

// Get returns the value stored under key. It fails with ErrNotFound
// when the map holds no entry for the key. In addition to structural
// equality Get requires the entry's cached hash code to match the
// probe key's current hash.
func (m *Map) Get(key interface{}) (interface{}, error) {
	v, ok := m.t.Lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Find will return the value for a key if it exists in the map and
// whether the key exists in the map. For non-nil values, exists will
// always be true.
func (m *Map) Find(key interface{}) (value interface{}, exists bool) {
	return m.t.Find(key)
}

// At returns the value associated with the key.
// If one is not found, nil is returned.
func (m *Map) At(key interface{}) interface{} {
	v, ok := m.t.Find(key)
	if !ok {
		return nil
	}
	return v
}

// EntryAt returns the entry (key, value pair) of the key.
// If one is not found, nil is returned.
func (m *Map) EntryAt(key interface{}) Entry {
	v, ok := m.t.Find(key)
	if !ok {
		return nil
	}
	return entry{key: key, value: v}
}

// Remove detaches the entry for key from the map and returns its
// value. It fails with ErrNotFound when the map holds no entry for
// the key.
func (m *Map) Remove(key interface{}) (interface{}, error) {
	v, ok := m.t.Remove(key)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Contains will test if the key exists in the map. The scan walks
// every bucket and chain entry rather than probing by hash, so it
// costs O(capacity + size).
func (m *Map) Contains(key interface{}) bool {
	return m.t.ContainsKey(key)
}

// ContainsValue will test if the value exists in the map, walking
// every bucket and chain entry.
func (m *Map) ContainsValue(value interface{}) bool {
	return m.t.ContainsValue(value)
}

// Length returns the number of entries in the map.
func (m *Map) Length() int {
	return m.t.Len()
}

// IsEmpty is true when the map contains no entries.
func (m *Map) IsEmpty() bool {
	return m.t.Len() == 0
}

// Clear removes every entry from the map, emptying each bucket's
// chain in place. The capacity and load factor are unchanged.
func (m *Map) Clear() {
	m.t.Clear()
}

// Capacity returns the current number of bucket slots.
func (m *Map) Capacity() int {
	return m.t.Cap()
}

// LoadFactor returns the growth threshold the map was created with.
func (m *Map) LoadFactor() float64 {
	return m.t.LoadFactor()
}

// KeySet returns the keys of the map as an insertion-ordered set,
// collected in bucket order then chain order within each bucket. The
// set is a snapshot; later changes to the map do not show through.
func (m *Map) KeySet() *hashset.Set {
	out := hashset.Empty()
	m.t.Range(func(k, _ interface{}) bool {
		out.Add(k)
		return true
	})
	return out
}

// Values returns the values of the map in bucket order then chain
// order within each bucket. Values may repeat. The slice is a
// snapshot detached from the map.
func (m *Map) Values() []interface{} {
	out := make([]interface{}, 0, m.Length())
	m.t.Range(func(_, v interface{}) bool {
		out = append(out, v)
		return true
	})
	return out
}

// EntrySet returns the entries of the map as an insertion-ordered set
// of detached Entry copies, collected in bucket order then chain
// order. Mutating the map after the call does not affect the set.
func (m *Map) EntrySet() *hashset.Set {
	out := hashset.Empty()
	m.t.Range(func(k, v interface{}) bool {
		out.Add(entry{key: k, value: v})
		return true
	})
	return out
}

// PutAll copies every entry of other into the map by calling Put for
// each in other's own traversal order. Entries already present are
// overwritten one at a time; there is no batch atomicity.
func (m *Map) PutAll(other *Map) {
	other.t.Range(func(k, v interface{}) bool {
		m.Put(k, v)
		return true
	})
}

// AsNative returns the map converted to a go native map type. The
// nil key, should one be present, is carried over as a nil key.
func (m *Map) AsNative() map[interface{}]interface{} {
	out := make(map[interface{}]interface{})
	m.t.Range(func(k, v interface{}) bool {
		out[k] = v
		return true
	})
	return out
}

// Equal tests if two maps are Equal by comparing the entries of each.
// Equal implements the Equaler which allows for deep
// comparisons when there are maps of maps
func (m *Map) Equal(o interface{}) bool {
	other, ok := o.(*Map)
	if !ok {
		return ok
	}
	if m.Length() != other.Length() {
		return false
	}
	foundAll := true
	m.t.Range(func(key, value interface{}) bool {
		v, exists := other.Find(key)
		if !exists || !dyn.Equal(v, value) {
			foundAll = false
			return false
		}
		return true
	})
	return foundAll
}

// Range will loop over the entries in the Map and call 'do' on each entry.
// The 'do' function may be of many types:
//
// func(key, value interface{}) bool:
//    Takes empty interfaces and returns if the loop should continue.
//    Useful to avoid reflection or for hetrogenous maps.
// func(key, value interface{}):
//    Takes empty interfaces.
//    Useful to avoid reflection or for hetrogenous maps.
// func(entry Entry) bool:
//    Takes the Entry type and returns if the loop should continue
//    Is called directly and avoids entry unpacking if not necessary.
// func(entry Entry):
//    Takes the Entry type.
//    Is called directly and avoids entry unpacking if not necessary.
// func(k kT, v vT) bool
//    Takes a key of key type and a value of value type and returns if the loop should contiune.
//    Is called with reflection and will panic if the kT and vT types are incorrect.
// func(k kT, v vT)
//    Takes a key of key type and a value of value type.
//    Is called with reflection and will panic if the kT and vT types are incorrect.
// Range will panic if passed anything not matching these signatures.
func (m *Map) Range(do interface{}) {
	fn := genRangeFunc(do)
	m.t.Range(func(k, v interface{}) bool {
		return fn(entry{key: k, value: v})
	})
}

func genRangeFunc(do interface{}) func(Entry) bool {
	switch fn := do.(type) {
	case func(key, value interface{}) bool:
		return func(entry Entry) bool {
			return fn(entry.Key(), entry.Value())
		}
	case func(key, value interface{}):
		return func(entry Entry) bool {
			fn(entry.Key(), entry.Value())
			return true
		}
	case func(e Entry) bool:
		return fn
	case func(e Entry):
		return func(entry Entry) bool {
			fn(entry)
			return true
		}
	default:
		rv := reflect.ValueOf(do)
		if rv.Kind() != reflect.Func {
			panic(errRangeSig)
		}
		rt := rv.Type()
		if rt.NumIn() != 2 || rt.NumOut() > 1 {
			panic(errRangeSig)
		}
		if rt.NumOut() == 1 &&
			rt.Out(0).Kind() != reflect.Bool {
			panic(errRangeSig)
		}
		return func(entry Entry) bool {
			out := dyn.Apply(do, entry.Key(), entry.Value())
			if out != nil {
				return out.(bool)
			}
			return true
		}
	}
}

// Seq returns a sequence of Entry corresponding to the map's entries
// in bucket order then chain order. The sequence is built from a
// snapshot taken when Seq is called.
func (m *Map) Seq() seq.Sequence {
	entries := make([]Entry, 0, m.Length())
	m.t.Range(func(k, v interface{}) bool {
		entries = append(entries, entry{key: k, value: v})
		return true
	})
	if len(entries) == 0 {
		return nil
	}
	return &entrySeq{entries: entries}
}

type entrySeq struct {
	entries []Entry
	index   int
}

func (s *entrySeq) First() interface{} {
	return s.entries[s.index]
}

func (s *entrySeq) Next() seq.Sequence {
	if s.index+1 >= len(s.entries) {
		return nil
	}
	return &entrySeq{
		entries: s.entries,
		index:   s.index + 1,
	}
}

func (s *entrySeq) String() string {
	return seq.ConvertToString(s)
}

// String returns a string representation of the map.
func (m *Map) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "{ ")
	m.Range(func(entry Entry) {
		fmt.Fprintf(&b, "%s ", entry)
	})
	fmt.Fprint(&b, "}")
	return b.String()
}

// Apply takes an arbitrary number of arguments and returns the
// value At the first argument.  Apply allows map to be called
// as a function by the 'dyn' library.
func (m *Map) Apply(args ...interface{}) interface{} {
	key := args[0]
	return m.At(key)
}
