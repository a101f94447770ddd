package parser

import (
	"strconv"

	"corelang/arena"
	"corelang/ast"
	"corelang/scope"
	"corelang/token"
)

// precedence levels for the operator-precedence scan (spec.md §4.4).
// Higher binds tighter. Call, index and attribute access share the
// tightest (postfix) level so a chain like a.b(1)[2].c resolves
// left-associatively through repeated right-most splits.
const (
	precPostfix = 70 // call, index-by-expression, attribute-by-identifier
	precFactor  = 60 // * / %
	precTerm    = 50 // + -
	precCompare = 40 // < <= > >=
	precEquality = 30 // == !=
	precAnd     = 20
	precOr      = 10
)

func precedenceOfBinop(op token.Op) int {
	switch op {
	case token.OpMul, token.OpDiv, token.OpMod:
		return precFactor
	case token.OpAdd, token.OpSub:
		return precTerm
	case token.OpLess, token.OpLessEq, token.OpGreater, token.OpGreaterEq:
		return precCompare
	case token.OpEq, token.OpNotEq:
		return precEquality
	case token.OpAnd:
		return precAnd
	case token.OpOr:
		return precOr
	default:
		return -1
	}
}

// attrOp is a synthetic operator value recognised only by the
// expression scanner: a '.' token is lexed as a BINOP whose Op carries
// this string, so it can share the generic split machinery with call
// and index while still being distinguished in the split switch.
const attrOp token.Op = "."

func isAssignOp(op token.Op) bool {
	switch op {
	case token.OpAssign, token.OpAddAssign, token.OpSubAssign, token.OpMulAssign, token.OpDivAssign:
		return true
	default:
		return false
	}
}

// isUnaryCapable reports whether op can also open a unary expression,
// used only defensively: the lexer is expected to have already tagged
// a token's Kind as UNOP vs BINOP based on context (spec.md §3 lists
// "unary-operator symbol" as its own token kind), so a BINOP-kind
// token reaching this check is never actually in unary position, but
// guarding the split-window's position-0 case keeps the invariant from
// spec.md §4.4 ("a unary operator is eligible only at position 0 of
// the scan window") true even if that assumption is ever relaxed.
func isUnaryCapable(op token.Op) bool {
	return op == token.OpSub
}

// statementStarters gates the operator-precedence scan's halting rule
// ("any token that starts a new statement outside brackets", spec.md
// §4.4) and doubles as the whitelist error recovery's find-next-
// statement heuristic (C6) scans for.
var statementStarters = map[string]bool{
	"var": true, "const": true, "func": true, "class": true,
	"if": true, "while": true, "for": true, "with": true, "do": true,
	"import": true, "return": true, "raise": true, "break": true,
	"continue": true, "await": true, "async": true,
}

type splitKind int

const (
	splitOrdinary splitKind = iota
	splitCall
	splitIndex
	splitAttr
)

type splitResult struct {
	index int
	kind  splitKind
	op    token.Op
	found bool
}

// scanSplit performs the operator-precedence scan of spec.md §4.4
// starting at p.pos and never reading at or past limit. It returns the
// lowest-precedence (loosest-binding) depth-0 split point, ties broken
// toward the right-most occurrence (which, applied recursively, yields the usual
// left-associative parse).
func (p *Parser) scanSplit(limit int) splitResult {
	start := p.pos
	depth := 0
	best := splitResult{index: -1}
	bestPrec := -1

	consider := func(i int, prec int, kind splitKind, op token.Op) {
		if !best.found || prec <= bestPrec {
			bestPrec = prec
			best = splitResult{index: i, kind: kind, op: op, found: true}
		}
	}

	for i := start; i < limit; i++ {
		tok := p.view.At(i)

		if tok.Kind == token.BRACKET {
			switch tok.Payload.Bracket {
			case token.CallOpen:
				if depth == 0 {
					consider(i, precPostfix, splitCall, "")
				}
				depth++
			case token.IndexOpen:
				if depth == 0 {
					consider(i, precPostfix, splitIndex, "")
				}
				depth++
			case token.LParen, token.LBracket, token.LBrace:
				depth++
			case token.RParen, token.RBracket, token.RBrace:
				if depth == 0 {
					return best
				}
				depth--
			}
			continue
		}

		if depth > 0 {
			continue
		}

		switch tok.Kind {
		case token.COMMA, token.MAPARROW, token.COLON, token.INLINEARROW:
			return best
		}
		if tok.Kind == token.KEYWORD && (tok.Payload.Str == "then" || tok.Payload.Str == "else") {
			return best
		}
		if tok.Kind == token.BINOP && isAssignOp(tok.Payload.Op) {
			return best
		}
		if tok.Kind == token.KEYWORD && i != start && statementStarters[tok.Payload.Str] {
			return best
		}
		if tok.Kind == token.BINOP && tok.Payload.Op == attrOp {
			consider(i, precPostfix, splitAttr, attrOp)
			continue
		}
		if tok.Kind == token.BINOP {
			if i == start && isUnaryCapable(tok.Payload.Op) {
				continue
			}
			if prec := precedenceOfBinop(tok.Payload.Op); prec >= 0 {
				consider(i, prec, splitOrdinary, tok.Payload.Op)
			}
		}
	}
	return best
}

// matchingClose finds the index of the bracket that closes the one at
// openIdx (already consumed as a CallOpen/IndexOpen/LBracket/etc.),
// scanning no further than limit. It returns -1 if unbalanced.
func (p *Parser) matchingClose(openIdx int, open, close token.BracketChar, limit int) int {
	depth := 1
	for i := openIdx + 1; i < limit; i++ {
		tok := p.view.At(i)
		if tok.Kind != token.BRACKET {
			continue
		}
		switch tok.Payload.Bracket {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ExprGreedy parses one expression starting at p.pos, never reading at
// or past limit, trying the greedy operator-precedence mode first and
// falling back to the non-greedy primary parser (spec.md §4.4).
func (p *Parser) ExprGreedy(limit int) (arena.ID, error) {
	split := p.scanSplit(limit)
	if !split.found {
		return p.exprNonGreedy(limit)
	}

	start := p.pos
	switch split.kind {
	case splitCall:
		return p.parseCallSplit(start, split.index, limit)
	case splitIndex:
		return p.parseIndexSplit(start, split.index, limit)
	case splitAttr:
		return p.parseAttrSplit(start, split.index, limit)
	default:
		return p.parseBinarySplit(start, split.index, split.op, limit)
	}
}

func (p *Parser) parseBinarySplit(start, opIdx int, op token.Op, limit int) (arena.ID, error) {
	left, err := p.exprBounded(start, opIdx)
	if err != nil {
		return arena.Nil, err
	}
	p.pos = opIdx + 1
	right, err := p.ExprGreedy(limit)
	if err != nil {
		return arena.Nil, err
	}
	id := p.allocAt(start, ast.Binary{Left: left, Right: right, Op: op})
	return id, nil
}

func (p *Parser) parseAttrSplit(start, dotIdx, limit int) (arena.ID, error) {
	object, err := p.exprBounded(start, dotIdx)
	if err != nil {
		return arena.Nil, err
	}
	p.pos = dotIdx + 1
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.Attribute{Object: object, Name: name}), nil
}

func (p *Parser) parseIndexSplit(start, openIdx, limit int) (arena.ID, error) {
	object, err := p.exprBounded(start, openIdx)
	if err != nil {
		return arena.Nil, err
	}
	closeIdx := p.matchingClose(openIdx, token.IndexOpen, token.RBracket, limit)
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(openIdx, "unbalanced '[' starting here")
	}
	p.pos = openIdx + 1
	index, err := p.ExprGreedy(closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	if p.pos != closeIdx {
		return arena.Nil, p.errorAt(p.pos, "expected ']', found %s", p.view.Describe(p.pos))
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.Index{Object: object, Index: index}), nil
}

func (p *Parser) parseCallSplit(start, openIdx, limit int) (arena.ID, error) {
	callee, err := p.exprBounded(start, openIdx)
	if err != nil {
		return arena.Nil, err
	}
	closeIdx := p.matchingClose(openIdx, token.CallOpen, token.RParen, limit)
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(openIdx, "unbalanced '(' starting here")
	}
	p.pos = openIdx + 1
	args, unpackLast, err := p.parseCallArgs(closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.Call{Callee: callee, Args: args, UnpackLastPositional: unpackLast}), nil
}

// parseCallArgs parses a comma-separated call-argument list up to (not
// including) limit, which must address the closing ')'. An argument of
// the form `name = expr` is keyword; `*expr` as the last argument
// marks UnpackLastPositional.
func (p *Parser) parseCallArgs(limit int) ([]ast.CallArg, bool, error) {
	var args []ast.CallArg
	unpackLast := false
	for p.pos < limit {
		unpack := false
		if p.checkOp(token.OpMul) {
			p.advance()
			unpack = true
		}
		name := ""
		if p.checkKind(token.IDENTIFIER) && p.peekAt(1).Kind == token.BINOP && p.peekAt(1).Payload.Op == token.OpAssign {
			name = p.advance().Payload.Str
			p.advance() // '='
		}
		val, err := p.ExprGreedy(limit)
		if err != nil {
			return nil, false, err
		}
		args = append(args, ast.CallArg{Name: name, Value: val})
		if unpack {
			unpackLast = true
		}
		if p.pos < limit && p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return args, unpackLast, nil
}

// exprBounded parses exactly one expression occupying [from, to): it
// repositions p.pos to from, parses greedily bounded by to, and
// requires the parse to consume the whole window.
func (p *Parser) exprBounded(from, to int) (arena.ID, error) {
	p.pos = from
	id, err := p.ExprGreedy(to)
	if err != nil {
		return arena.Nil, err
	}
	if p.pos != to {
		return arena.Nil, p.errorAt(p.pos, "unexpected %s", p.view.Describe(p.pos))
	}
	return id, nil
}

// exprNonGreedy parses exactly one primary expression, the fallback
// used when the greedy scan finds no operator to split on (spec.md
// §4.4).
func (p *Parser) exprNonGreedy(limit int) (arena.ID, error) {
	start := p.pos
	if start >= limit {
		return arena.Nil, p.errorHere("expected expression, found %s", p.view.Describe(p.pos))
	}
	tok := p.peek()

	switch {
	case tok.Kind == token.UNOP, tok.Kind == token.BINOP && isUnaryCapable(tok.Payload.Op):
		p.advance()
		operand, err := p.ExprGreedy(limit)
		if err != nil {
			return arena.Nil, err
		}
		return p.allocAt(start, ast.Unary{Operand: operand, Op: tok.Payload.Op}), nil

	case tok.Kind == token.IDENTIFIER:
		if p.isInlineFuncStart() {
			return p.parseInlineFunc(limit)
		}
		p.advance()
		return p.allocAt(start, ast.Identifier{Name: tok.Payload.Str}), nil

	case tok.Kind == token.INT:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: tok.Payload.Int}), nil
	case tok.Kind == token.FLOAT:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: tok.Payload.Float}), nil
	case tok.Kind == token.BOOL:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: tok.Payload.Bool}), nil
	case tok.Kind == token.STRING:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: tok.Payload.Str}), nil
	case tok.Kind == token.BYTES:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: tok.Payload.Bytes}), nil
	case tok.Kind == token.NONE:
		p.advance()
		return p.allocAt(start, ast.Literal{Value: nil}), nil

	case tok.Kind == token.KEYWORD && tok.Payload.Str == "given":
		return p.parseGiven(limit)

	case p.checkBracket(token.LParen):
		if id, ok, err := p.tryInlineFuncParenArgs(limit); ok {
			return id, err
		}
		p.advance()
		inner, err := p.ExprGreedy(limit)
		if err != nil {
			return arena.Nil, err
		}
		if _, err := p.expectBracket(token.RParen); err != nil {
			return arena.Nil, err
		}
		return inner, nil

	case p.checkBracket(token.LBracket):
		return p.parseBracketContainer(limit)

	case p.checkBracket(token.LBrace):
		return p.parseBraceContainer(limit)
	}

	return arena.Nil, p.errorHere("unrecognised expression, found %s", p.view.Describe(p.pos))
}

// isInlineFuncStart reports whether the current position is a bare
// single-identifier inline function `name => (expr)` (spec.md §4.4).
func (p *Parser) isInlineFuncStart() bool {
	nxt := p.peekAt(1)
	return nxt.Kind == token.INLINEARROW
}

func (p *Parser) parseInlineFunc(limit int) (arena.ID, error) {
	start := p.pos
	paramName := p.advance().Payload.Str
	p.advance() // the inline arrow
	fnScope := scope.NewChild(p.currentScope, true)
	p.declareIn(fnScope, paramName, scope.DeclParameter, arena.Nil, p.view.Line(start), p.view.Column(start))
	return p.finishInlineFuncBody(start, ast.ArgList{Names: []string{paramName}, Defaults: []arena.ID{arena.Nil}}, fnScope, limit)
}

// tryInlineFuncParenArgs speculatively parses `(ARGS) =>` starting at a
// '(' token; ok is false (with no tokens consumed) when what follows
// the matching ')' isn't an inline-function arrow, letting the caller
// fall back to ordinary parenthesized-subexpression parsing.
func (p *Parser) tryInlineFuncParenArgs(limit int) (arena.ID, bool, error) {
	start := p.pos
	closeIdx := p.matchingClose(start, token.LParen, token.RParen, limit)
	if closeIdx < 0 || p.view.At(closeIdx+1).Kind != token.INLINEARROW {
		return arena.Nil, false, nil
	}
	p.advance() // '('
	argList, err := p.parseArgList(closeIdx)
	if err != nil {
		return arena.Nil, true, err
	}
	p.pos = closeIdx + 1
	p.advance() // arrow
	fnScope := scope.NewChild(p.currentScope, true)
	for _, name := range argList.Names {
		if name == "" {
			continue
		}
		p.declareIn(fnScope, name, scope.DeclParameter, arena.Nil, p.view.Line(start), p.view.Column(start))
	}
	id, err := p.finishInlineFuncBody(start, argList, fnScope, limit)
	return id, true, err
}

func (p *Parser) finishInlineFuncBody(start int, args ast.ArgList, fnScope *scope.Scope, limit int) (arena.ID, error) {
	if _, err := p.expectBracket(token.LParen); err != nil {
		return arena.Nil, err
	}
	closeIdx := p.matchingClose(p.pos-1, token.LParen, token.RParen, limit)
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(p.pos-1, "unbalanced '(' starting here")
	}
	bodyExpr, err := p.exprBounded(p.pos, closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	p.pos = closeIdx + 1
	ret := p.allocAt(start, ast.Return{Value: bodyExpr})
	return p.allocAt(start, ast.InlineFunc{Args: args, Body: ret, Scope: fnScope}), nil
}

// parseArgList parses a `func`/inline-function positional argument
// list up to (not including) limit, which addresses the closing ')'.
func (p *Parser) parseArgList(limit int) (ast.ArgList, error) {
	var names []string
	var defaults []arena.ID
	unpackLast := false
	for p.pos < limit {
		unpack := false
		if p.checkOp(token.OpMul) {
			p.advance()
			unpack = true
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return ast.ArgList{}, err
		}
		var def arena.ID = arena.Nil
		if p.checkOp(token.OpAssign) {
			p.advance()
			def, err = p.ExprGreedy(limit)
			if err != nil {
				return ast.ArgList{}, err
			}
		}
		names = append(names, name)
		defaults = append(defaults, def)
		if unpack {
			unpackLast = true
		}
		if p.pos < limit && p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return ast.ArgList{Names: names, Defaults: defaults, UnpackLastPositional: unpackLast}, nil
}

// parseGiven parses `given COND then ( YES else NO )` (spec.md §4.4).
// then/else act as ordinary scan-halting tokens at depth 0 so the
// condition and branches are each parsed bounded to their own window.
func (p *Parser) parseGiven(limit int) (arena.ID, error) {
	start := p.pos
	p.advance() // 'given'
	cond, err := p.ExprGreedy(limit)
	if err != nil {
		return arena.Nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return arena.Nil, err
	}
	if _, err := p.expectBracket(token.LParen); err != nil {
		return arena.Nil, err
	}
	thenVal, err := p.ExprGreedy(limit)
	if err != nil {
		return arena.Nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return arena.Nil, err
	}
	elseVal, err := p.ExprGreedy(limit)
	if err != nil {
		return arena.Nil, err
	}
	if _, err := p.expectBracket(token.RParen); err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.Given{Cond: cond, Then: thenVal, Else: elseVal}), nil
}

// parseBracketContainer disambiguates list vs vector at a '[' (spec.md
// §4.4's container-constructor table).
func (p *Parser) parseBracketContainer(limit int) (arena.ID, error) {
	start := p.pos
	openIdx := p.pos
	closeIdx := p.matchingClose(openIdx, token.LBracket, token.RBracket, limit)
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(openIdx, "unbalanced '[' starting here")
	}
	p.advance() // '['

	if p.pos == closeIdx {
		p.pos = closeIdx + 1
		return p.allocAt(start, ast.ListCtor{}), nil
	}

	if isVectorLabelStart(p.peek(), p.peekAt(1)) {
		return p.parseVector(start, closeIdx)
	}

	var elems []arena.ID
	for p.pos < closeIdx {
		el, err := p.ExprGreedy(closeIdx)
		if err != nil {
			return arena.Nil, err
		}
		elems = append(elems, el)
		if p.pos < closeIdx && p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if p.pos != closeIdx {
		return arena.Nil, p.errorAt(p.pos, "expected ']', found %s", p.view.Describe(p.pos))
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.ListCtor{Elements: elems}), nil
}

// isVectorLabelStart reports whether the upcoming tokens are a
// vector's `x:` / `1:` label prefix.
func isVectorLabelStart(first, second token.Token) bool {
	if second.Kind != token.COLON {
		return false
	}
	if first.Kind == token.IDENTIFIER {
		switch first.Payload.Str {
		case "x", "y", "z", "w":
			return true
		}
	}
	if first.Kind == token.INT && first.Payload.Int >= 1 && first.Payload.Int <= 4 {
		return true
	}
	return false
}

var letterLabels = []string{"x", "y", "z", "w"}

// parseVector parses `[x: EXPR, y: EXPR, ...]` up to 4 components, the
// labels either the letter set or the numeric set, never mixed, and
// required to appear in order (spec.md §4.4).
func (p *Parser) parseVector(start, closeIdx int) (arena.ID, error) {
	var components []arena.ID
	var labels []string
	useLetters := p.peek().Kind == token.IDENTIFIER
	for p.pos < closeIdx {
		labelTok := p.peek()
		var label string
		if useLetters {
			if labelTok.Kind != token.IDENTIFIER {
				return arena.Nil, p.errorHere("vector labels cannot mix letters and numbers")
			}
			label = labelTok.Payload.Str
		} else {
			if labelTok.Kind != token.INT {
				return arena.Nil, p.errorHere("vector labels cannot mix letters and numbers")
			}
			label = labelTok.Lexeme()
		}
		expectedIdx := len(labels)
		if useLetters {
			if expectedIdx >= len(letterLabels) || label != letterLabels[expectedIdx] {
				return arena.Nil, p.errorHere("vector labels must appear in order x, y, z, w")
			}
		} else {
			if expectedIdx >= 4 || label != strconv.Itoa(expectedIdx+1) {
				return arena.Nil, p.errorHere("vector labels must appear in order 1, 2, 3, 4")
			}
		}
		if len(labels) >= 4 {
			return arena.Nil, p.errorHere("vector cannot exceed four components")
		}
		p.advance() // label
		p.advance() // ':'
		val, err := p.ExprGreedy(closeIdx)
		if err != nil {
			return arena.Nil, err
		}
		components = append(components, val)
		labels = append(labels, label)
		if p.pos < closeIdx && p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if p.pos != closeIdx {
		return arena.Nil, p.errorAt(p.pos, "expected ']', found %s", p.view.Describe(p.pos))
	}
	if len(components) < 2 {
		return arena.Nil, p.errorHere("vector must have at least two components")
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.VectorCtor{Components: components, Labels: labels}), nil
}

// parseBraceContainer disambiguates map vs set vs empty-map at a '{'
// (spec.md §4.4's container-constructor table).
func (p *Parser) parseBraceContainer(limit int) (arena.ID, error) {
	start := p.pos
	openIdx := p.pos
	closeIdx := p.matchingClose(openIdx, token.LBrace, token.RBrace, limit)
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(openIdx, "unbalanced '{' starting here")
	}
	p.advance() // '{'

	if p.pos == closeIdx-1 && p.checkKind(token.MAPARROW) {
		p.advance()
		p.pos = closeIdx + 1
		return p.allocAt(start, ast.MapCtor{}), nil
	}
	if p.pos == closeIdx {
		p.pos = closeIdx + 1
		return p.allocAt(start, ast.SetCtor{}), nil
	}

	firstKey, err := p.ExprGreedy(closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	if p.checkKind(token.MAPARROW) {
		p.advance()
		return p.parseMapTail(start, firstKey, closeIdx)
	}
	var elems []arena.ID
	elems = append(elems, firstKey)
	for p.pos < closeIdx && p.checkKind(token.COMMA) {
		p.advance()
		el, err := p.ExprGreedy(closeIdx)
		if err != nil {
			return arena.Nil, err
		}
		elems = append(elems, el)
	}
	if p.pos != closeIdx {
		return arena.Nil, p.errorAt(p.pos, "expected '}', found %s", p.view.Describe(p.pos))
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.SetCtor{Elements: elems}), nil
}

func (p *Parser) parseMapTail(start int, firstKey arena.ID, closeIdx int) (arena.ID, error) {
	firstVal, err := p.ExprGreedy(closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	keys := []arena.ID{firstKey}
	values := []arena.ID{firstVal}
	for p.pos < closeIdx && p.checkKind(token.COMMA) {
		p.advance()
		k, err := p.ExprGreedy(closeIdx)
		if err != nil {
			return arena.Nil, err
		}
		if !p.checkKind(token.MAPARROW) {
			return arena.Nil, p.errorHere("expected '=>', found %s", p.view.Describe(p.pos))
		}
		p.advance()
		v, err := p.ExprGreedy(closeIdx)
		if err != nil {
			return arena.Nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	if p.pos != closeIdx {
		return arena.Nil, p.errorAt(p.pos, "expected '}', found %s", p.view.Describe(p.pos))
	}
	p.pos = closeIdx + 1
	return p.allocAt(start, ast.MapCtor{Keys: keys, Values: values}), nil
}

