// Package parser implements the hand-written recursive-descent parser
// (components C4, C5, C6): an expression parser with non-greedy and
// greedy (operator-precedence) modes, a statement parser gated by the
// enclosing statement-mode, and error recovery that resynchronizes on
// a local failure. It consumes an already-lexed token.View and
// produces an ast.Unit, allocating every node from that unit's arena
// and registering every declared name in the scope chain rooted at
// the unit's global scope.
package parser

import (
	"fmt"

	"corelang/arena"
	"corelang/ast"
	"corelang/scope"
	"corelang/token"
)

// Mode gates which statement kinds are legal at the current parse
// position (spec.md §4.5: "Accepts a statement-mode from {top-level,
// in-class, in-function, in-class-function}").
type Mode int

const (
	ModeTopLevel Mode = iota
	ModeInClass
	ModeInFunction
	ModeInClassFunction
)

func (m Mode) insideFunction() bool {
	return m == ModeInFunction || m == ModeInClassFunction
}

func (m Mode) insideClass() bool {
	return m == ModeInClass || m == ModeInClassFunction
}

// Parser holds the mutable state of one parse: the token view, the
// unit under construction, the enclosing project, and the current
// position a recursive call reads from. pos is the parser's current
// read position, an offset into view shared by every subroutine (the
// teacher's parser.go advances a single index field the same way
// rather than threading explicit start/end windows through returns).
type Parser struct {
	view    *token.View
	unit    *ast.Unit
	project Project

	pos int

	// currentScope is the scope recursive expression parsing should
	// chain a freshly created scope (e.g. an inline function's) from.
	// The statement parser updates it on entry to each scope-carrying
	// construct; expression parsing never introduces a scope itself
	// except for inline functions, which is why this is simpler than
	// threading a *scope.Scope parameter through every expression
	// parsing function.
	currentScope *scope.Scope
}

// New creates a parser over tokens, producing nodes into a fresh unit
// named fileURI.
func New(tokens []token.Token, fileURI string, project Project) *Parser {
	unit := ast.NewUnit(fileURI, len(tokens))
	return &Parser{
		view:         token.NewView(tokens),
		unit:         unit,
		project:      project,
		currentScope: unit.Global,
	}
}

// Parse runs the statement parser over the whole view at top level and
// returns the resulting unit. A failed statement never aborts the
// whole run: error recovery (C6) resynchronizes and parsing resumes at
// the next statement (spec.md §4.5: "the parser still returns a usable
// (partial) node so that subsequent statements can be parsed").
func (p *Parser) Parse() *ast.Unit {
	for !p.atEnd() {
		id, err := p.statement(ModeTopLevel, p.unit.Global)
		if err != nil {
			p.reportError(err)
			p.recoverToNextStatement()
			continue
		}
		if id != arena.Nil {
			p.unit.Statements = append(p.unit.Statements, id)
		}
	}
	return p.unit
}

// --- token access helpers, mirroring the teacher's peek/advance/match
// family but against a token.View rather than a raw slice. ---

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.view.At(p.pos)
}

func (p *Parser) peekAt(offset int) token.Token {
	return p.view.At(p.pos + offset)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) checkKind(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) checkKeyword(word string) bool {
	tok := p.peek()
	return tok.Kind == token.KEYWORD && tok.Payload.Str == word
}

func (p *Parser) checkBracket(b token.BracketChar) bool {
	tok := p.peek()
	return tok.Kind == token.BRACKET && tok.Payload.Bracket == b
}

func (p *Parser) checkOp(op token.Op) bool {
	tok := p.peek()
	return (tok.Kind == token.BINOP || tok.Kind == token.UNOP) && tok.Payload.Op == op
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchBracket(b token.BracketChar) bool {
	if p.checkBracket(b) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOp(op token.Op) bool {
	if p.checkOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectBracket(b token.BracketChar) (token.Token, error) {
	if p.checkBracket(b) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorHere("expected %q, found %s", string(rune(b)), p.view.Describe(p.pos))
}

func (p *Parser) expectIdentifier() (string, error) {
	if p.checkKind(token.IDENTIFIER) {
		return p.advance().Payload.Str, nil
	}
	return "", p.errorHere("expected identifier, found %s", p.view.Describe(p.pos))
}

func (p *Parser) expectKeyword(word string) error {
	if p.matchKeyword(word) {
		return nil
	}
	return p.errorHere("expected %q, found %s", word, p.view.Describe(p.pos))
}

func (p *Parser) errorHere(format string, args ...any) error {
	return p.errorAt(p.pos, format, args...)
}

func (p *Parser) errorAt(pos int, format string, args ...any) error {
	return NewParseError(p.view.Line(pos), p.view.Column(pos), fmt.Sprintf(format, args...))
}

func (p *Parser) reportError(err error) {
	pe, ok := err.(*ParseError)
	var line, column int32
	text := err.Error()
	if ok {
		line, column = pe.Line, pe.Column
		text = pe.Message
	}
	msg := ast.Message{
		Severity: ast.SeverityError,
		Text:     text,
		File:     p.unit.FileURI,
		Line:     line,
		Column:   column,
	}
	p.unit.Messages = append(p.unit.Messages, msg)
	p.project.AddMessage(msg)
}

func (p *Parser) reportWarning(line, column int32, text string) {
	msg := ast.Message{
		Severity: ast.SeverityWarning,
		Text:     text,
		File:     p.unit.FileURI,
		Line:     line,
		Column:   column,
	}
	p.unit.Messages = append(p.unit.Messages, msg)
	p.project.AddMessage(msg)
}

// allocAt allocates a node into the unit's arena, stamping its line,
// column, and starting token index from start (the node's first
// token, which the caller has typically already consumed by the time
// it builds the final Data payload).
func (p *Parser) allocAt(start int, data ast.NodeData) arena.ID {
	return p.unit.Nodes.Alloc(ast.Node{
		Line:       p.view.Line(start),
		Column:     p.view.Column(start),
		TokenIndex: int32(start),
		Parent:     arena.Nil,
		Data:       data,
	})
}

func (p *Parser) declareIn(s *scope.Scope, name string, kind scope.DeclKind, decl arena.ID, line, column int32) {
	p.declareWithPath(s, name, kind, decl, line, column, nil)
}

func (p *Parser) declareWithPath(s *scope.Scope, name string, kind scope.DeclKind, decl arena.ID, line, column int32, path scope.ImportPath) {
	res := s.Add(name, kind, decl, line, column, path, p.project.Warnings())
	if res.Err != nil {
		p.reportError(NewParseError(line, column, res.Err.Error()))
		return
	}
	if res.Shadow != scope.ShadowNone && res.ShadowOf != nil {
		p.reportWarning(line, column, shadowMessage(name, res.Shadow, res.ShadowOf))
	}
}

func shadowMessage(name string, sev scope.ShadowSeverity, of *scope.Def) string {
	kind := "a"
	switch sev {
	case scope.ShadowWarnGlobal:
		kind = "global"
	case scope.ShadowWarnDirectLocal:
		kind = "an outer local"
	case scope.ShadowWarnParentFuncLocal:
		kind = "an outer function's local"
	}
	return fmt.Sprintf("%q shadows %s declared at line %d, column %d", name, kind, of.Line, of.Column)
}
