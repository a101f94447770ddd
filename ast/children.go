package ast

import "corelang/arena"

// Children returns the direct child node IDs of n, in source order,
// skipping arena.Nil entries. Used by the transform driver (C7) to walk
// the tree without each caller needing a type switch over every Kind.
func Children(n *Node) []arena.ID {
	push := func(ids []arena.ID, more ...arena.ID) []arena.ID {
		for _, id := range more {
			if id != arena.Nil {
				ids = append(ids, id)
			}
		}
		return ids
	}

	var out []arena.ID
	switch d := n.Data.(type) {
	case Identifier, Literal, Break, Continue, Import:
		// leaves
	case Binary:
		out = push(out, d.Left, d.Right)
	case Unary:
		out = push(out, d.Operand)
	case Call:
		out = push(out, d.Callee)
		for _, a := range d.Args {
			out = push(out, a.Value)
		}
	case Index:
		out = push(out, d.Object, d.Index)
	case Attribute:
		out = push(out, d.Object)
	case Assign:
		out = push(out, d.Target, d.Value)
	case InlineFunc:
		out = push(out, d.Args.Defaults...)
		out = push(out, d.Body)
	case FuncDef:
		out = push(out, d.Args.Defaults...)
		out = push(out, d.Body...)
	case ClassDef:
		out = push(out, d.Base)
		out = push(out, d.Vars...)
		out = push(out, d.Funcs...)
	case VarDef:
		out = push(out, d.Init)
	case If:
		out = push(out, d.Cond)
		out = push(out, d.Then...)
		for _, ei := range d.ElseIfs {
			out = push(out, ei.Cond)
			out = push(out, ei.Body...)
		}
		out = push(out, d.Else...)
	case While:
		out = push(out, d.Cond)
		out = push(out, d.Body...)
	case For:
		out = push(out, d.Iterable)
		out = push(out, d.Body...)
	case With:
		for _, c := range d.Clauses {
			out = push(out, c.Expr)
		}
		out = push(out, d.Body...)
	case Do:
		out = push(out, d.Body...)
		for _, r := range d.Rescues {
			out = push(out, r.Types...)
			out = push(out, r.Body...)
		}
		out = push(out, d.Finally...)
	case Return:
		out = push(out, d.Value)
	case Raise:
		out = push(out, d.Value)
	case Await:
		out = push(out, d.Value)
	case ListCtor:
		out = push(out, d.Elements...)
	case SetCtor:
		out = push(out, d.Elements...)
	case VectorCtor:
		out = push(out, d.Components...)
	case MapCtor:
		out = push(out, d.Keys...)
		out = push(out, d.Values...)
	case Given:
		out = push(out, d.Cond, d.Then, d.Else)
	case ExprStmt:
		out = push(out, d.Expr)
	}
	return out
}
