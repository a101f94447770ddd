package gcheap

import (
	"unsafe"

	"corelang/value"
)

// List is a GC list: an ordered, mutable sequence of values.
type List struct {
	Items []value.Value
	hash  uint32
}

func NewList(items []value.Value) *List {
	return &List{Items: append([]value.Value(nil), items...)}
}

func (l *List) HeapKind() string  { return "list" }
func (l *List) Identity() uintptr { return ptrIdentity(unsafe.Pointer(l)) }
func (l *List) Len() int          { return len(l.Items) }

func (l *List) ListElement(i int) value.Value { return l.Items[i] }

func (l *List) Append(v value.Value) {
	l.Items = append(l.Items, v)
	l.hash = 0
}

func (l *List) Set(i int, v value.Value) {
	l.Items[i] = v
	l.hash = 0
}

// Hash folds over at most the first 32 immutable elements (spec.md
// §4.8, SPEC_FULL.md §4 "Hash algorithm constants"); a list's hash is
// invalidated by any mutation since its content, not just its
// identity, determines the hash.
func (l *List) Hash() uint32 {
	if l.hash == 0 {
		l.hash = value.HashListElements(l.Items)
	}
	return l.hash
}
