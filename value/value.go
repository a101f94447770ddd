// Package value implements the tagged runtime value representation
// (spec.md §3 "Value", §4.8, component C8): a small tagged union that
// fits the common cases (numbers, booleans, short strings/bytes,
// function/class references) inline, and falls back to a GC-heap
// pointer (see the gcheap package) for anything larger.
//
// A Value is deliberately a plain, comparable-by-field Go struct, not
// an interface: the teacher's interpreter represents runtime values as
// `any` (interpreter/environment.go), which is simple but boxes every
// int and loses the "N machine words, one cache line" layout the
// runtime value model calls for. corelang instead follows the
// tagged-struct shape the original C `valuecontent` uses, expressed as
// an idiomatic Go struct with a Kind tag and a handful of payload
// fields reused across kinds.
package value

import "fmt"

// Kind tags which payload field(s) of a Value are live.
type Kind uint8

const (
	None Kind = iota
	UnspecifiedKwarg
	Int
	Float
	Bool
	ShortString
	ShortBytes
	ConstString
	ConstBytes
	FuncRef
	ClassRef
	ErrorValue
	GCVal
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case UnspecifiedKwarg:
		return "unspecified-kwarg"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case ShortString:
		return "short-string"
	case ShortBytes:
		return "short-bytes"
	case ConstString:
		return "const-string"
	case ConstBytes:
		return "const-bytes"
	case FuncRef:
		return "funcref"
	case ClassRef:
		return "classref"
	case ErrorValue:
		return "error"
	case GCVal:
		return "gc-value"
	default:
		return "unknown"
	}
}

// ShortLen is K, the inline-capacity constant for short strings and
// short bytes: up to ShortLen-1 code points (or bytes) are stored
// inline in a Value with no heap allocation; StringValue/BytesValue
// store ShortLen or more as a ConstString/ConstBytes (spec.md §3 "short-string... inline
// UTF-32 code points up to K-1"). The original source's
// VALUECONTENT_SHORTSTRLEN/VALUECONTENT_SHORTBYTESLEN constants are
// not present in the retrieved original_source/ headers; 16 is chosen
// to match the "first 16 elements" the hash algorithm already commits
// to below, so a short value's whole content always participates in
// its hash.
const ShortLen = 16

// GCObject is the subset of a gcheap object's methods that the value
// package needs without importing gcheap directly (gcheap imports value
// for the values it stores, e.g. list/map elements, so value cannot
// import gcheap back). Concrete GC value kinds satisfy this via gcheap.
//
// Equality needs more than this minimal shape for container kinds, so
// equalContainers type-asserts GC against the
// narrower role interfaces below (StringLike, BytesLike, ListLike,
// SetLike, MapLike, ObjectLike) rather than growing GCObject itself —
// a gcheap kind only implements the roles it actually has content for.
type GCObject interface {
	// HeapKind names the concrete GC value kind (string, bytes, list,
	// set, map, closure-funcref, object-instance).
	HeapKind() string
	// Hash returns the cached structural hash, computing and caching
	// it on first call (0 is reserved for "not yet computed").
	Hash() uint32
	// Identity returns a stable pointer-sized identity used for cycle
	// detection during structural equality (two Values wrapping the
	// same GCObject pointer are trivially equal).
	Identity() uintptr
}

// StringLike is implemented by a GC string.
type StringLike interface {
	StringRunes() []rune
}

// BytesLike is implemented by GC bytes.
type BytesLike interface {
	ByteContent() []byte
}

// ListLike is implemented by a GC list.
type ListLike interface {
	Len() int
	ListElement(i int) Value
}

// SetLike is implemented by a GC set.
type SetLike interface {
	Len() int
	SetMembers() []Value
}

// MapPair is one key/value pair of a GC map.
type MapPair struct {
	Key, Val Value
}

// MapLike is implemented by a GC map.
type MapLike interface {
	Len() int
	MapPairs() []MapPair
}

// ObjectLike is implemented by a GC object instance.
type ObjectLike interface {
	ClassID() int64
	Attributes() []Value
}

// FuncRefLike is implemented by a GC closure-funcref (a function id
// plus captured bindings, as opposed to the inline FuncRef kind which
// has no captures).
type FuncRefLike interface {
	FunctionID() int64
}

// Value is the tagged runtime value. Only the fields relevant to Kind
// are meaningful; others are zero. Str/Bytes hold inline short
// string/bytes payloads and also serve as the buffer for const-
// prealloc string/bytes (an owned, immutable slice, never mutated in
// place once constructed).
type Value struct {
	Kind Kind

	I int64   // Int, FuncRef (function id), ClassRef (class id), ErrorValue (class id)
	F float64 // Float
	B bool    // Bool

	// Str/Bytes back ShortString/ConstString and ShortBytes/ConstBytes
	// respectively. For ShortString/ShortBytes len(Str) <= ShortLen-1.
	Str   []rune
	Bytes []byte

	// ErrMessage carries the message of an ErrorValue; the class id
	// itself lives in I.
	ErrMessage string

	// GC is the heap payload for Kind == GCVal.
	GC GCObject
}

// NoneValue is the canonical none value.
var NoneValue = Value{Kind: None}

// UnspecifiedKwargValue is the canonical unspecified-keyword-argument
// value, used as a call argument's default when the caller omitted it
// and the callee must distinguish "omitted" from "explicitly none".
var UnspecifiedKwargValue = Value{Kind: UnspecifiedKwarg}

func BoolValue(b bool) Value { return Value{Kind: Bool, B: b} }

func IntValue(i int64) Value { return Value{Kind: Int, I: i} }

func FloatValue(f float64) Value { return Value{Kind: Float, F: f} }

func FuncRefValue(id int64) Value { return Value{Kind: FuncRef, I: id} }

func ClassRefValue(id int64) Value { return Value{Kind: ClassRef, I: id} }

func ErrorValueOf(classID int64, message string) Value {
	return Value{Kind: ErrorValue, I: classID, ErrMessage: message}
}

func GCValue(obj GCObject) Value { return Value{Kind: GCVal, GC: obj} }

// StringValue builds a Value holding s, inline if it fits in ShortLen-1
// code points, otherwise as a const-prealloc string (an owned,
// immutable copy; this constructor never promotes to a GC string,
// matching valuecontent_SetPreallocStringU8's "const" path in the
// original source, which callers use for literals and other values
// that should never be freed individually).
func StringValue(s string) Value {
	runes := []rune(s)
	if len(runes) < ShortLen {
		return Value{Kind: ShortString, Str: runes}
	}
	return Value{Kind: ConstString, Str: runes}
}

// BytesValue is StringValue's counterpart for raw byte content.
func BytesValue(b []byte) Value {
	if len(b) < ShortLen {
		return Value{Kind: ShortBytes, Bytes: append([]byte(nil), b...)}
	}
	return Value{Kind: ConstBytes, Bytes: append([]byte(nil), b...)}
}

func (v Value) IsString() bool {
	return v.Kind == ShortString || v.Kind == ConstString ||
		(v.Kind == GCVal && v.GC != nil && v.GC.HeapKind() == "string")
}

func (v Value) IsBytes() bool {
	return v.Kind == ShortBytes || v.Kind == ConstBytes ||
		(v.Kind == GCVal && v.GC != nil && v.GC.HeapKind() == "bytes")
}

func (v Value) isNumber() bool {
	return v.Kind == Int || v.Kind == Float
}

func (v Value) asFloat() float64 {
	if v.Kind == Float {
		return v.F
	}
	return float64(v.I)
}

// IsMutable reports whether v is a GC value that is neither a string
// nor bytes (spec.md §4.8 "Mutability"); used by the map implementation
// in gcheap to reject mutable keys.
func (v Value) IsMutable() bool {
	if v.Kind != GCVal || v.GC == nil {
		return false
	}
	k := v.GC.HeapKind()
	return k != "string" && k != "bytes"
}

func (v Value) String() string {
	switch v.Kind {
	case None:
		return "none"
	case UnspecifiedKwarg:
		return "<unspecified>"
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Float:
		return fmt.Sprintf("%g", v.F)
	case Bool:
		return fmt.Sprintf("%t", v.B)
	case ShortString, ConstString:
		return string(v.Str)
	case ShortBytes, ConstBytes:
		return fmt.Sprintf("%v", v.Bytes)
	case FuncRef:
		return fmt.Sprintf("<func #%d>", v.I)
	case ClassRef:
		return fmt.Sprintf("<class #%d>", v.I)
	case ErrorValue:
		return fmt.Sprintf("<error #%d: %s>", v.I, v.ErrMessage)
	case GCVal:
		if v.GC == nil {
			return "<nil gc-value>"
		}
		return fmt.Sprintf("<%s>", v.GC.HeapKind())
	default:
		return "<invalid value>"
	}
}
