package gcheap

import (
	"unsafe"

	"corelang/value"
)

type mapEntry struct {
	key, val value.Value
}

// Map is a GC map: a hash-bucketed collection of key/value pairs,
// keyed the same way Set resolves membership (value.Hash to bucket,
// value.Equal to resolve collisions), since value.Value cannot be a
// native Go map key.
type Map struct {
	buckets map[uint32][]mapEntry
	count   int
}

func NewMap() *Map {
	return &Map{buckets: make(map[uint32][]mapEntry)}
}

func (m *Map) HeapKind() string  { return "map" }
func (m *Map) Identity() uintptr { return ptrIdentity(unsafe.Pointer(m)) }
func (m *Map) Len() int          { return m.count }

// Set inserts or overwrites the value for key. Returns an error if key
// is mutable (spec.md §4.8 "Mutability ... used by the map
// implementation to reject mutable keys").
func (m *Map) Set(key, val value.Value) error {
	if key.IsMutable() {
		return ErrMutableKey
	}
	h := value.Hash(key)
	bucket := m.buckets[h]
	for i, e := range bucket {
		if value.Equal(e.key, key) {
			bucket[i].val = val
			return nil
		}
	}
	m.buckets[h] = append(bucket, mapEntry{key, val})
	m.count++
	return nil
}

// Get looks up key, reporting whether it was found.
func (m *Map) Get(key value.Value) (value.Value, bool) {
	h := value.Hash(key)
	for _, e := range m.buckets[h] {
		if value.Equal(e.key, key) {
			return e.val, true
		}
	}
	return value.Value{}, false
}

// Delete removes key, reporting whether anything was removed.
func (m *Map) Delete(key value.Value) bool {
	h := value.Hash(key)
	bucket := m.buckets[h]
	for i, e := range bucket {
		if value.Equal(e.key, key) {
			m.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			m.count--
			return true
		}
	}
	return false
}

// MapPairs returns every key/value pair in an unspecified but stable-
// for-one-call order, used by value.Equal's structural map comparison.
func (m *Map) MapPairs() []value.MapPair {
	out := make([]value.MapPair, 0, m.count)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			out = append(out, value.MapPair{Key: e.key, Val: e.val})
		}
	}
	return out
}

// Hash is 0: like Set, the original source leaves map hashing
// unimplemented (H64GCVALUETYPE_MAP returns 0).
func (m *Map) Hash() uint32 { return 0 }
