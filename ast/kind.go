// Package ast defines the abstract syntax tree produced by the parser.
//
// Following spec.md §9's design note on the polymorphic expression
// node, every AST node is one record of a sum type: a shared Node
// envelope (line, column, token index, parent, later-pass storage slot)
// plus a Data payload whose concrete Go type selects the variant. Nodes
// are addressed by arena.ID rather than pointer, so the parent back
// reference in Node.Parent is a plain index with no ownership
// implication and no risk of a dangling pointer across arena
// tombstoning.
package ast

import "corelang/arena"

// Kind tags which concrete NodeData type a Node.Data holds.
type Kind uint8

const (
	KindIdentifier Kind = iota
	KindLiteral
	KindBinary
	KindUnary
	KindCall
	KindIndex
	KindAttribute
	KindAssign
	KindInlineFunc
	KindFuncDef
	KindClassDef
	KindVarDef
	KindIf
	KindWhile
	KindFor
	KindWith
	KindDo
	KindReturn
	KindRaise
	KindAwait
	KindBreak
	KindContinue
	KindImport
	KindListCtor
	KindSetCtor
	KindVectorCtor
	KindMapCtor
	KindGiven
	KindExprStmt
)

var kindNames = map[Kind]string{
	KindIdentifier: "identifier", KindLiteral: "literal", KindBinary: "binary",
	KindUnary: "unary", KindCall: "call", KindIndex: "index",
	KindAttribute: "attribute", KindAssign: "assign", KindInlineFunc: "inline-func",
	KindFuncDef: "func-def", KindClassDef: "class-def", KindVarDef: "var-def",
	KindIf: "if", KindWhile: "while", KindFor: "for", KindWith: "with",
	KindDo: "do", KindReturn: "return", KindRaise: "raise", KindAwait: "await",
	KindBreak: "break", KindContinue: "continue", KindImport: "import",
	KindListCtor: "list", KindSetCtor: "set", KindVectorCtor: "vector",
	KindMapCtor: "map", KindGiven: "given", KindExprStmt: "expr-stmt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// NodeData is the marker interface every variant payload implements.
type NodeData interface {
	Kind() Kind
}

// Node is the shared envelope every AST record carries, regardless of
// variant (spec.md §3: "Every node carries its source line and column,
// the index of the token it starts at, a parent back reference ...,
// and a per-node storage slot for later passes").
type Node struct {
	Line       int32
	Column     int32
	TokenIndex int32
	Parent     arena.ID
	Slot       any
	Data       NodeData
}

func (n *Node) Kind() Kind {
	if n.Data == nil {
		return KindIdentifier
	}
	return n.Data.Kind()
}
