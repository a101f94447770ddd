package gcheap

import (
	"unsafe"

	"corelang/value"
)

// Closure is a GC closure-funcref: a function id plus the bindings it
// captured from its defining scope (spec.md §3 "GC value ...
// closure-funcref (function id + captured bindings)"). The bare
// value.FuncRef kind covers a plain top-level/method reference with no
// captures; an inline function that closes over outer locals needs
// this heap form instead.
type Closure struct {
	FuncID    int64
	Captured  map[string]value.Value
	hash      uint32
}

func NewClosure(funcID int64, captured map[string]value.Value) *Closure {
	return &Closure{FuncID: funcID, Captured: captured}
}

func (c *Closure) HeapKind() string  { return "closure-funcref" }
func (c *Closure) Identity() uintptr { return ptrIdentity(unsafe.Pointer(c)) }
func (c *Closure) FunctionID() int64 { return c.FuncID }

// Hash follows the original source's closure hash
// (horse64/valuecontentstruct.c: "gcval->closure_info->closure_func_id
// % INT32_MAX") — the function id alone, ignoring captured bindings,
// since two closures over the same function with different captures
// are still the "same function" for hashing purposes.
func (c *Closure) Hash() uint32 {
	if c.hash == 0 {
		c.hash = uint32(((c.FuncID % hashModInt64) + hashModInt64) % hashModInt64)
		if c.hash == 0 {
			c.hash = 1
		}
	}
	return c.hash
}

const hashModInt64 = 1<<31 - 1
