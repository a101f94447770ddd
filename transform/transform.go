// Package transform implements the generic AST transform driver (C7,
// spec.md §4.7) later compiler passes use to walk a parsed Unit. It
// generalizes the teacher's per-kind Visitor interfaces
// (ast.ExpressionVisitor / ast.StmtVisitor in the original) into one
// index-based walk driven by ast.Children, so a single Apply call
// serves every node kind without a pass author hand-rolling recursion
// per statement type.
package transform

import (
	"fmt"

	"corelang/arena"
	"corelang/ast"
)

// VisitIn is called pre-order, before a node's children are visited.
// Returning descend=false skips this node's children (but VisitOut
// still runs for the node itself). Returning oom=true aborts the walk.
type VisitIn func(u *ast.Unit, id arena.ID, ud any) (descend bool, oom bool)

// VisitOut is called post-order, after a node's children (if descended
// into) have been visited.
type VisitOut func(u *ast.Unit, id arena.ID, ud any) (oom bool)

// OutOfMemoryError is the synthetic diagnostic attached to the unit's
// message list when a callback signals out-of-memory, matching
// spec.md §4.7 and the propagation policy of §7 ("Out-of-memory is
// always fatal to the enclosing operation but never to the process").
type OutOfMemoryError struct {
	AtNode arena.ID
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("out of memory while transforming node %d", e.AtNode)
}

// Apply walks every statement in u and its descendants, pre-order for
// visitIn and post-order for visitOut. Either callback may be nil.
// On a callback signalling out-of-memory, Apply stops, appends a
// synthetic error Message to u.Messages, and returns that error; the
// caller (the project) is expected to treat this as fatal to the
// current operation only.
func Apply(u *ast.Unit, visitIn VisitIn, visitOut VisitOut, ud any) error {
	for _, id := range u.Statements {
		if err := applyNode(u, id, visitIn, visitOut, ud); err != nil {
			return err
		}
	}
	return nil
}

// ApplyNode walks a single subtree rooted at id; exported so a pass
// that only needs to re-walk part of a tree (e.g. after a localized
// rewrite) doesn't have to re-run Apply over the whole unit.
func ApplyNode(u *ast.Unit, id arena.ID, visitIn VisitIn, visitOut VisitOut, ud any) error {
	return applyNode(u, id, visitIn, visitOut, ud)
}

func applyNode(u *ast.Unit, id arena.ID, visitIn VisitIn, visitOut VisitOut, ud any) error {
	if id == arena.Nil {
		return nil
	}

	descend := true
	if visitIn != nil {
		var oom bool
		descend, oom = visitIn(u, id, ud)
		if oom {
			return reportOOM(u, id)
		}
	}

	if descend {
		node := u.Get(id)
		for _, child := range ast.Children(node) {
			if err := applyNode(u, child, visitIn, visitOut, ud); err != nil {
				return err
			}
		}
	}

	if visitOut != nil {
		if oom := visitOut(u, id, ud); oom {
			return reportOOM(u, id)
		}
	}

	return nil
}

func reportOOM(u *ast.Unit, id arena.ID) error {
	err := &OutOfMemoryError{AtNode: id}
	u.Messages = append(u.Messages, ast.Message{
		Severity: ast.SeverityError,
		Text:     err.Error(),
		File:     u.FileURI,
		Line:     u.Get(id).Line,
		Column:   u.Get(id).Column,
	})
	return err
}

// WireParents is the core transform the project runs immediately after
// parsing: it sets every node's Parent field to its enclosing node's
// ID (or arena.Nil for a top-level statement), matching spec.md §4.7's
// "the core uses it to wire parent pointers". Parent wiring needs the
// enclosing node's ID threaded down one recursion level at a time, so
// it walks directly rather than through Apply's single shared ud value.
func WireParents(u *ast.Unit) {
	var walk func(parent, id arena.ID)
	walk = func(parent, id arena.ID) {
		if id == arena.Nil {
			return
		}
		node := u.Get(id)
		node.Parent = parent
		for _, child := range ast.Children(node) {
			walk(id, child)
		}
	}
	for _, id := range u.Statements {
		walk(arena.Nil, id)
	}
}
