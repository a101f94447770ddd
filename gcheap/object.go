package gcheap

import (
	"unsafe"

	"corelang/value"
)

// Object is a GC object-instance: a class id plus an attribute vector
// indexed by the interned attribute id the parser assigned each
// attribute name (spec.md §3 "object-instance (class id + attribute
// vector)"; the attribute-name interning itself is the parser's
// Project.InternAttributeName, not this package's concern — Object
// just stores values at whatever indices the caller assigns).
type Object struct {
	ClassIDValue int64
	Attrs        []value.Value
}

func NewObject(classID int64, attrCount int) *Object {
	return &Object{ClassIDValue: classID, Attrs: make([]value.Value, attrCount)}
}

func (o *Object) HeapKind() string         { return "object-instance" }
func (o *Object) Identity() uintptr        { return ptrIdentity(unsafe.Pointer(o)) }
func (o *Object) ClassID() int64           { return o.ClassIDValue }
func (o *Object) Attributes() []value.Value { return o.Attrs }

func (o *Object) GetAttr(id int32) value.Value {
	if int(id) < 0 || int(id) >= len(o.Attrs) {
		return value.NoneValue
	}
	return o.Attrs[id]
}

func (o *Object) SetAttr(id int32, v value.Value) {
	if int(id) < 0 {
		return
	}
	for int(id) >= len(o.Attrs) {
		o.Attrs = append(o.Attrs, value.NoneValue)
	}
	o.Attrs[id] = v
}

// Hash is 0: the original source leaves object-instance hashing
// unimplemented (H64GCVALUETYPE_OBJINSTANCE returns 0); a class
// defining `.hash()` would override this at the interpreter level,
// which is out of scope here.
func (o *Object) Hash() uint32 { return 0 }
