package ast

import (
	"corelang/arena"
	"corelang/scope"
)

// Severity classifies a Message (spec.md §6).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Message is the project-wide result-message record the parser
// produces for diagnostics (spec.md §6): severity, text, file, line,
// column.
type Message struct {
	Severity Severity
	Text     string
	File     string
	Line     int32
	Column   int32
}

// Unit is the parser's output for one translation unit: the statement
// list, its global scope, the accumulated diagnostics, and the
// normalized file URI (spec.md §6).
type Unit struct {
	Nodes      *arena.Arena[Node]
	Statements []arena.ID
	Global     *scope.Scope
	Messages   []Message
	FileURI    string
}

// NewUnit creates an empty unit backed by a fresh arena and global
// scope, ready for the parser to populate.
func NewUnit(fileURI string, sizeHint int) *Unit {
	return &Unit{
		Nodes:   arena.New[Node](sizeHint),
		Global:  scope.NewGlobal(),
		FileURI: fileURI,
	}
}

// Get returns a pointer to the node addressed by id.
func (u *Unit) Get(id arena.ID) *Node {
	return u.Nodes.Get(id)
}

// Release tears down the translation unit: the arena is bulk-freed and
// the global scope (embedded in no particular node, so not freed by
// arena teardown) is dropped along with it.
func (u *Unit) Release() {
	u.Nodes.Release()
	u.Global = nil
}
