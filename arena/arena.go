// Package arena implements the pool allocator that owns every AST node
// for one translation unit (spec.md §4.3, component C3).
//
// Allocation is O(1) and never moves or reuses a slot mid-lifetime:
// nodes are appended to a backing slice and addressed by a stable
// index (ID). Deallocation of an individual node is a tombstone
// (Destroy) rather than real reclamation; real reclamation happens in
// bulk when Release is called at translation-unit teardown. This
// matches the original design's rationale: parsers create and discard
// many nodes on error paths, and a bump arena keeps per-node cost
// trivial while avoiding use-after-free during recovery, since a
// tombstoned ID still resolves to a valid (marked) record rather than
// freed memory.
package arena

// ID addresses a single record owned by an Arena. Nil (-1) never
// addresses a real record; the first allocated record has ID 0.
type ID int32

// Nil is the sentinel "no node" ID, used for optional child references
// (e.g. an if-statement with no else branch).
const Nil ID = -1

// record wraps a pool entry with its tombstone bit.
type record[T any] struct {
	value     T
	destroyed bool
}

// Arena is a pool allocator for records of one fixed type T, sized to
// hold exactly one such record per slot (spec.md: "a pool allocator
// sized to one expression record").
type Arena[T any] struct {
	records []record[T]
}

// New creates an empty arena with room for sizeHint records.
func New[T any](sizeHint int) *Arena[T] {
	return &Arena[T]{records: make([]record[T], 0, sizeHint)}
}

// Alloc appends a new record and returns its stable ID. O(1), never
// moves existing records.
func (a *Arena[T]) Alloc(value T) ID {
	id := ID(len(a.records))
	a.records = append(a.records, record[T]{value: value})
	return id
}

// Get returns a pointer to the record addressed by id, so callers can
// mutate fields in place (e.g. wiring a parent pointer after the fact).
// Panics on an out-of-range id, matching the invariant that every ID
// ever handed out by this arena remains valid until Release.
func (a *Arena[T]) Get(id ID) *T {
	return &a.records[id].value
}

// Valid reports whether id addresses a record in this arena (ignoring
// the tombstone bit).
func (a *Arena[T]) Valid(id ID) bool {
	return id >= 0 && int(id) < len(a.records)
}

// Destroy tombstones the record at id. The slot's storage is not
// reclaimed until Release; Destroy exists so parsers can mark a
// half-built node as dead on an error path without invalidating any ID
// that may still reference it structurally (e.g. as another node's
// Parent) during recovery.
func (a *Arena[T]) Destroy(id ID) {
	if a.Valid(id) {
		a.records[id].destroyed = true
	}
}

// Destroyed reports whether id has been tombstoned.
func (a *Arena[T]) Destroyed(id ID) bool {
	return a.Valid(id) && a.records[id].destroyed
}

// Len returns the number of records ever allocated (including
// tombstoned ones).
func (a *Arena[T]) Len() int {
	return len(a.records)
}

// Release bulk-frees every record owned by this arena. Call this once,
// at translation-unit teardown; no individual node in this arena may be
// accessed afterward.
func (a *Arena[T]) Release() {
	a.records = nil
}
