// Package hashset implements a mutable Set that remembers insertion
// order, on top of the same chained bucket table that backs hashmap.
package hashset // import "jsouthworth.net/go/mutable/hashset"

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"jsouthworth.net/go/dyn"
	"jsouthworth.net/go/mutable/internal/table"
	"jsouthworth.net/go/seq"
)

const (
	defaultCapacity   = 16
	defaultLoadFactor = 0.75
)

var errRangeSig = errors.New("Range requires a function: func(v vT) bool or func(v vT)")

// Set is a mutable unordered-lookup set with ordered traversal.
// Membership checks go through the bucket table; Range, Seq and
// String visit elements in the order they were first added. Sets are
// not safe for concurrent use.
type Set struct {
	t     *table.Table
	order []interface{}
}

// Empty returns a new empty set.
func Empty() *Set {
	return &Set{
		t: table.New(defaultCapacity, defaultLoadFactor),
	}
}

// New returns a set containing the supplied elements.
func New(elems ...interface{}) *Set {
	s := Empty()
	for _, elem := range elems {
		s = s.Add(elem)
	}
	return s
}

// From will convert many different go types to a mutable set.
// Converting some types is more efficient than others and the
// mechanisms are described below.
//
// *Set:
//    A new set is created and the elements are copied into it in order.
// map[interface{}]struct{}:
//    Converted directly by looping over the map and calling Add on an empty set.
// []interface{}:
//    The elements are passed to New.
// map[kT]vT:
//    Reflection is used to loop over the keys of the map and add them to an empty set.
// []T:
//    Reflection is used to add the elements of the slice to an empty set.
// seq.Sequence:
//    The sequence is reduced into an empty set.
// seq.Seqable:
//    A sequence is obtained using Seq() and then the sequence is reduced into an empty set.
func From(value interface{}) *Set {
	switch v := value.(type) {
	case *Set:
		out := Empty()
		for _, elem := range v.order {
			out.Add(elem)
		}
		return out
	case map[interface{}]struct{}:
		out := Empty()
		for k := range v {
			out.Add(k)
		}
		return out
	case []interface{}:
		return New(v...)
	case seq.Seqable:
		return setFromSequence(v.Seq())
	case seq.Sequence:
		return setFromSequence(v)
	default:
		return setFromReflection(value)
	}
}

func setFromSequence(coll seq.Sequence) *Set {
	if coll == nil {
		return Empty()
	}
	return seq.Reduce(func(result *Set, input interface{}) *Set {
		return result.Add(input)
	}, Empty(), coll).(*Set)
}

func setFromReflection(value interface{}) *Set {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Map:
		out := Empty()
		for _, key := range v.MapKeys() {
			out.Add(key.Interface())
		}
		return out
	case reflect.Slice:
		out := Empty()
		for i := 0; i < v.Len(); i++ {
			out = out.Add(v.Index(i).Interface())
		}
		return out
	default:
		if value == nil {
			return Empty()
		}
		return New(value)
	}
}

// Add inserts elem into the set and returns the set. An element that
// is already present is left as is and keeps its original position in
// the traversal order.
func (s *Set) Add(elem interface{}) *Set {
	if _, ok := s.t.Find(elem); ok {
		return s
	}
	s.t.Put(elem, elem)
	s.order = append(s.order, elem)
	return s
}

// At returns the elem if it exists in the set otherwise it returns nil.
func (s *Set) At(elem interface{}) interface{} {
	if _, ok := s.t.Find(elem); ok {
		return elem
	}
	return nil
}

// Contains returns true if the element is in the set, false otherwise.
func (s *Set) Contains(elem interface{}) bool {
	_, ok := s.t.Find(elem)
	return ok
}

// Delete removes an element from the set and from the traversal
// order, returning the set.
func (s *Set) Delete(elem interface{}) *Set {
	if _, ok := s.t.Remove(elem); !ok {
		return s
	}
	for i, e := range s.order {
		if dyn.Equal(e, elem) {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s
}

// Length returns the number of elements in the set.
func (s *Set) Length() int {
	return s.t.Len()
}

// Range calls the passed in function on each element of the set in
// the order the elements were added.
// The function passed in may be of many types:
//
// func(value interface{}) bool:
//    Takes a value of any type and returns if the loop should continue.
//    Useful to avoid reflection where not needed and to support
//    heterogenous sets.
// func(value interface{})
//    Takes a value of any type.
//    Useful to avoid reflection where not needed and to support
//    heterogenous sets.
// func(value T) bool:
//    Takes a value of the type of element stored in the set and
//    returns if the loop should continue. Useful for homogeneous sets.
//    Is called with reflection and will panic if the type is incorrect.
// func(value T)
//    Takes a value of the type of element stored in the set and
//    returns if the loop should continue. Useful for homogeneous sets.
//    Is called with reflection and will panic if the type is incorrect.
// Range will panic if passed anything that doesn't match one of these signatures
func (s *Set) Range(do interface{}) {
	var rangefn func(interface{}) bool
	switch fn := do.(type) {
	case func(value interface{}) bool:
		rangefn = fn
	case func(value interface{}):
		rangefn = func(elem interface{}) bool {
			fn(elem)
			return true
		}
	default:
		rv := reflect.ValueOf(do)
		if rv.Kind() != reflect.Func {
			panic(errRangeSig)
		}
		rt := rv.Type()
		if rt.NumIn() != 1 || rt.NumOut() > 1 {
			panic(errRangeSig)
		}
		if rt.NumOut() == 1 &&
			rt.Out(0).Kind() != reflect.Bool {
			panic(errRangeSig)
		}
		rangefn = func(elem interface{}) bool {
			cont := true
			outs := rv.Call([]reflect.Value{
				reflect.ValueOf(elem)})
			if len(outs) != 0 {
				cont = outs[0].Interface().(bool)
			}
			return cont
		}
	}
	for _, elem := range s.order {
		if !rangefn(elem) {
			return
		}
	}
}

// Seq returns a sequence of the set's elements in the order they were
// added. The sequence is built from a snapshot taken when Seq is
// called.
func (s *Set) Seq() seq.Sequence {
	if len(s.order) == 0 {
		return nil
	}
	elems := make([]interface{}, len(s.order))
	copy(elems, s.order)
	return &elemSeq{elems: elems}
}

type elemSeq struct {
	elems []interface{}
	index int
}

func (s *elemSeq) First() interface{} {
	return s.elems[s.index]
}

func (s *elemSeq) Next() seq.Sequence {
	if s.index+1 >= len(s.elems) {
		return nil
	}
	return &elemSeq{
		elems: s.elems,
		index: s.index + 1,
	}
}

func (s *elemSeq) String() string {
	return seq.ConvertToString(s)
}

// String returns a string serialization of the set.
func (s *Set) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "{ ")
	s.Range(func(elem interface{}) {
		fmt.Fprintf(&b, "%v ", elem)
	})
	fmt.Fprint(&b, "}")
	return b.String()
}
