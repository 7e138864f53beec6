// Package hashmap implements a mutable hash map built from an array
// of buckets with chained entries. An entry's hash code is computed
// once when the entry is created; the bucket table doubles in size as
// soon as the ratio of entries to buckets exceeds the configured load
// factor, relinking the existing entries under the new capacity.
//
// A note about Key and Value equality. If you would like to override
// the default go equality operator for keys and values in this map
// library implement the Equal(other interface{}) bool function for
// the type. Otherwise '==' will be used with all its restrictions.
// Equal keys must hash identically; implement Hash() uintptr together
// with Equal when overriding equality.
//
// Get and Remove fail with ErrNotFound for a missing key instead of
// returning a nil sentinel. This is deliberate: a nil value is a
// legal thing to store, so absence is reported out of band. Code that
// expects missing keys should use Find or At, or guard with Contains.
package hashmap
