// Package gcheap implements the GC value kinds (spec.md §3 "GC value",
// §4.8, component C9): string, bytes, list, set, map, closure-funcref,
// and object-instance. Each is a plain Go struct satisfying one or more
// of value's role interfaces (value.StringLike, value.ListLike, ...)
// so that value.Equal/value.Hash can operate on them without value
// importing this package back.
//
// Collection is left to the Go runtime's GC: these are ordinary heap
// objects reachable only through value.Value.GC, not an independent
// tracing collector. spec.md's "GC values live until the collector
// proves them unreachable" is satisfied by Go's own collector once
// nothing still references the object, matching how the teacher's
// interpreter (interpreter/environment.go) leans on Go's GC for its
// `any`-boxed values rather than implementing its own.
package gcheap

import (
	"unsafe"

	"corelang/value"
)

// String is a GC string: a code-point buffer with a cached hash and a
// cached "letter length" (spec.md §3 "GC value ... string (length,
// letter-length cache, code-point buffer)"). LetterLen is computed
// lazily the first time LetterLength is called, separately from Hash,
// since most strings are never asked for their letter count.
type String struct {
	Runes     []rune
	hash      uint32
	letterLen int
	letterSet bool
}

func NewString(s string) *String { return &String{Runes: []rune(s)} }

func NewStringFromRunes(runes []rune) *String {
	return &String{Runes: append([]rune(nil), runes...)}
}

func (s *String) HeapKind() string    { return "string" }
func (s *String) Identity() uintptr   { return ptrIdentity(unsafe.Pointer(s)) }
func (s *String) StringRunes() []rune { return s.Runes }
func (s *String) Len() int            { return len(s.Runes) }

func (s *String) Hash() uint32 {
	if s.hash == 0 {
		s.hash = value.HashRunes(s.Runes)
	}
	return s.hash
}

// LetterLength counts code points classified as letters, caching the
// result (spec.md's "letter-length cache"), as distinct from the raw
// code-point count that Len returns. No other package in this module
// calls it.
func (s *String) LetterLength() int {
	if s.letterSet {
		return s.letterLen
	}
	n := 0
	for _, r := range s.Runes {
		if isLetter(r) {
			n++
		}
	}
	s.letterLen = n
	s.letterSet = true
	return n
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (s *String) String() string { return string(s.Runes) }

// Bytes is a GC byte buffer.
type Bytes struct {
	Data []byte
	hash uint32
}

func NewBytes(data []byte) *Bytes {
	return &Bytes{Data: append([]byte(nil), data...)}
}

func (b *Bytes) HeapKind() string    { return "bytes" }
func (b *Bytes) Identity() uintptr   { return ptrIdentity(unsafe.Pointer(b)) }
func (b *Bytes) ByteContent() []byte { return b.Data }
func (b *Bytes) Len() int            { return len(b.Data) }

func (b *Bytes) Hash() uint32 {
	if b.hash == 0 {
		b.hash = value.HashBytes(b.Data)
	}
	return b.hash
}
