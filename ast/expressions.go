package ast

import (
	"corelang/arena"
	"corelang/scope"
	"corelang/token"
)

// Identifier is a reference to a previously declared name.
type Identifier struct {
	Name string
}

func (Identifier) Kind() Kind { return KindIdentifier }

// Literal is a literal value: int64, float64, bool, nil (none), string,
// or []byte.
type Literal struct {
	Value any
}

func (Literal) Kind() Kind { return KindLiteral }

// Binary is a binary operation (a + b, a == b, a and b, ...).
type Binary struct {
	Left, Right arena.ID
	Op          token.Op
}

func (Binary) Kind() Kind { return KindBinary }

// Unary is a unary operation (-a, not a), including the error
// productions (*a, /a, +a) accepted so the parser can surface a more
// specific diagnostic later than "unrecognised expression" (spec.md
// §4.4 mirrors the teacher's unaryExpressionTypes error-production
// comment).
type Unary struct {
	Operand arena.ID
	Op      token.Op
}

func (Unary) Kind() Kind { return KindUnary }

// CallArg is one argument at a call site. Name is empty for a
// positional argument.
type CallArg struct {
	Name  string
	Value arena.ID
}

// Call is a call expression. UnpackLastPositional marks a call site
// that spreads its final positional argument (spec.md §3).
type Call struct {
	Callee               arena.ID
	Args                 []CallArg
	UnpackLastPositional bool
	IsAsync              bool
}

func (Call) Kind() Kind { return KindCall }

// Index is an index-by-expression access: object[index].
type Index struct {
	Object, Index arena.ID
}

func (Index) Kind() Kind { return KindIndex }

// Attribute is an attribute-by-identifier access: object.Name.
type Attribute struct {
	Object arena.ID
	Name   string
}

func (Attribute) Kind() Kind { return KindAttribute }

// Assign is an assignment expression. Op is one of the assignment
// family (=, +=, -=, *=, /=); Target must satisfy IsLValue.
type Assign struct {
	Op           token.Op
	Target, Value arena.ID
}

func (Assign) Kind() Kind { return KindAssign }

// ArgList is a function/inline-function parameter list: two parallel
// arrays of length N (spec.md §3). Names[i] == "" marks a positional
// parameter; Defaults[i] == arena.Nil marks one with no default.
type ArgList struct {
	Names                []string
	Defaults             []arena.ID
	UnpackLastPositional bool
}

// InlineFunc is an inline function literal (`x => (expr)` or
// `(args) => (expr)`). Its body is always exactly the single
// synthesized return statement wrapping Expr (spec.md §4.4).
type InlineFunc struct {
	Args  ArgList
	Body  arena.ID // a KindReturn node
	Scope *scope.Scope
}

func (InlineFunc) Kind() Kind { return KindInlineFunc }

// ListCtor is a `[a, b, c]` literal.
type ListCtor struct {
	Elements []arena.ID
}

func (ListCtor) Kind() Kind { return KindListCtor }

// SetCtor is a `{a, b, c}` literal.
type SetCtor struct {
	Elements []arena.ID
}

func (SetCtor) Kind() Kind { return KindSetCtor }

// VectorCtor is a `[x: 1, y: 2]`-style literal: 2 to 4 labeled
// components, labels either the letter set (x,y,z,w) or the numeric
// set (1,2,3,4), never mixed (spec.md §4.4).
type VectorCtor struct {
	Components []arena.ID
	Labels     []string
}

func (VectorCtor) Kind() Kind { return KindVectorCtor }

// MapCtor is a `{k => v, ...}` literal; Keys and Values are parallel.
type MapCtor struct {
	Keys, Values []arena.ID
}

func (MapCtor) Kind() Kind { return KindMapCtor }

// Given is `given COND then (YES else NO)`.
type Given struct {
	Cond, Then, Else arena.ID
}

func (Given) Kind() Kind { return KindGiven }

// IsLValue reports whether the node addressed by id is a valid
// assignment target: an identifier reference, or an attribute/index/call
// node whose left operand is itself an l-value (spec.md §4.5).
func IsLValue(get func(arena.ID) *Node, id arena.ID) bool {
	if id == arena.Nil {
		return false
	}
	n := get(id)
	switch d := n.Data.(type) {
	case Identifier:
		return true
	case Attribute:
		return IsLValue(get, d.Object)
	case Index:
		return IsLValue(get, d.Object)
	case Call:
		return IsLValue(get, d.Callee)
	default:
		return false
	}
}
