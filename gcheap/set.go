package gcheap

import (
	"unsafe"

	"corelang/value"
)

// Set is a GC set: a hash-bucketed collection of unique, immutable
// values. value.Value is not itself usable as a Go map key (it embeds
// a GCObject interface and slice fields), so membership is resolved by
// value.Hash for bucketing and value.Equal for collision resolution,
// the same two-step approach a hand-written hash table uses when its
// element type isn't natively comparable.
type Set struct {
	buckets map[uint32][]value.Value
	count   int
}

func NewSet() *Set {
	return &Set{buckets: make(map[uint32][]value.Value)}
}

func (s *Set) HeapKind() string  { return "set" }
func (s *Set) Identity() uintptr { return ptrIdentity(unsafe.Pointer(s)) }
func (s *Set) Len() int          { return s.count }

// Add inserts v if not already present, reporting whether it was
// newly added. Returns an error if v is mutable (spec.md §4.8
// "Mutability ... used by the map implementation to reject mutable
// keys" — a set applies the same restriction to its members, since set
// membership is a keyed lookup in all but name).
func (s *Set) Add(v value.Value) (added bool, err error) {
	if v.IsMutable() {
		return false, ErrMutableKey
	}
	h := value.Hash(v)
	for _, existing := range s.buckets[h] {
		if value.Equal(existing, v) {
			return false, nil
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.count++
	return true, nil
}

// Contains reports whether v is a member.
func (s *Set) Contains(v value.Value) bool {
	h := value.Hash(v)
	for _, existing := range s.buckets[h] {
		if value.Equal(existing, v) {
			return true
		}
	}
	return false
}

// Remove deletes v if present, reporting whether anything was removed.
func (s *Set) Remove(v value.Value) bool {
	h := value.Hash(v)
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if value.Equal(existing, v) {
			s.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			s.count--
			return true
		}
	}
	return false
}

// SetMembers returns every member in an unspecified but stable-for-one-
// call order, used by value.Equal's structural set comparison.
func (s *Set) SetMembers() []value.Value {
	out := make([]value.Value, 0, s.count)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}

// Hash is 0 for sets: the original source leaves set hashing
// unimplemented (horse64/valuecontentstruct.c's
// H64GCVALUETYPE_SET case returns 0 unconditionally), so a set is
// never usable as a hashable element of an outer container — it can
// still be compared with value.Equal via equalContainers, which never
// consults Hash.
func (s *Set) Hash() uint32 { return 0 }
