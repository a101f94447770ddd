package gcheap

import "errors"

// ErrMutableKey is returned by Set.Add/Map.Set when the key/member is
// a mutable GC value (spec.md §4.8 "Mutability ... used by the map
// implementation to reject mutable keys").
var ErrMutableKey = errors.New("gcheap: mutable value cannot be used as a set member or map key")
