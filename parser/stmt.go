package parser

import (
	"corelang/arena"
	"corelang/ast"
	"corelang/scope"
	"corelang/token"
)

// statement parses exactly one statement under mode, registering any
// declared name in s. A local failure is returned to the caller (the
// top-level Parse loop, or a block-body loop) for recovery; the node
// returned alongside a nil error is always fully formed even when a
// mode violation was reported (spec.md §4.5: "the parser still returns
// a usable (partial) node").
func (p *Parser) statement(mode Mode, s *scope.Scope) (arena.ID, error) {
	prevScope := p.currentScope
	p.currentScope = s
	defer func() { p.currentScope = prevScope }()

	switch {
	case p.checkKeyword("var"):
		return p.varStatement(mode, s, false)
	case p.checkKeyword("const"):
		return p.varStatement(mode, s, true)
	case p.checkKeyword("func"):
		return p.funcStatement(mode, s)
	case p.checkKeyword("class"):
		return p.classStatement(mode, s)
	case p.checkKeyword("do"):
		return p.doStatement(mode, s)
	case p.checkKeyword("if"):
		return p.ifStatement(mode, s)
	case p.checkKeyword("while"):
		return p.whileStatement(mode, s)
	case p.checkKeyword("for"):
		return p.forStatement(mode, s)
	case p.checkKeyword("with"):
		return p.withStatement(mode, s)
	case p.checkKeyword("import"):
		return p.importStatement(mode, s)
	case p.checkKeyword("return"):
		return p.returnStatement(mode)
	case p.checkKeyword("raise"):
		return p.raiseStatement(mode)
	case p.checkKeyword("break"):
		return p.breakStatement(mode)
	case p.checkKeyword("continue"):
		return p.continueStatement(mode)
	case p.checkKeyword("await"):
		return p.awaitStatement(mode)
	case p.checkKeyword("async"):
		return p.asyncStatement(mode)
	default:
		return p.exprStatement(mode)
	}
}

func (p *Parser) requireMode(ok bool, what string) error {
	if ok {
		return nil
	}
	return p.errorHere("%s is not allowed here", what)
}

// block parses `{ STMT* }` under mode/s, returning the statement list.
// On a per-statement failure it recovers to the next statement or the
// end of the block and keeps going, so one bad statement doesn't lose
// the rest of the block (spec.md §4.5/§4.6).
func (p *Parser) block(mode Mode, s *scope.Scope) ([]arena.ID, error) {
	if _, err := p.expectBracket(token.LBrace); err != nil {
		return nil, err
	}
	body := []arena.ID{}
	for !p.checkBracket(token.RBrace) && !p.atEnd() {
		beforeRecover := p.pos
		id, err := p.statement(mode, s)
		if err != nil {
			p.reportError(err)
			p.recoverWithinBlock()
			if p.pos == beforeRecover {
				// recoverWithinBlock made no progress (e.g. the
				// failure happened on the very first token of an
				// unrecognisable construct with nothing after it
				// that looks like a statement start): fall back to
				// the coarser end-of-block search so the parser
				// still terminates this block.
				p.findEndOfBlock()
			}
			if p.checkBracket(token.RBrace) || p.atEnd() {
				break
			}
			continue
		}
		if id != arena.Nil {
			body = append(body, id)
		}
	}
	if _, err := p.expectBracket(token.RBrace); err != nil {
		return nil, err
	}
	return body, nil
}

// varStatement parses `var`/`const NAME [modifiers] [= EXPR]` (spec.md
// §4.5's table row for var/const).
func (p *Parser) varStatement(mode Mode, s *scope.Scope, isConst bool) (arena.ID, error) {
	start := p.pos
	p.advance() // 'var'/'const'
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}

	var mods ast.VarModifiers
	for {
		switch {
		case p.matchKeyword("deprecated"):
			mods.Deprecated = true
		case p.matchKeyword("protect"):
			mods.Protect = true
		case p.matchKeyword("equals"):
			mods.Equals = true
		default:
			goto modifiersDone
		}
	}
modifiersDone:
	if isConst && mods.Protect {
		p.reportError(p.errorAt(start, "'protect' is not allowed on 'const'"))
		mods.Protect = false
	}
	if mods.Equals && mods.Protect {
		p.reportError(p.errorAt(start, "'equals' already implies 'protect'; combining them is redundant"))
	}

	var init arena.ID = arena.Nil
	if p.checkOp(token.OpAssign) {
		p.advance()
		init, err = p.ExprGreedy(p.statementEnd())
		if err != nil {
			return arena.Nil, err
		}
	} else if tok := p.peek(); tok.Kind == token.BINOP && isAssignOp(tok.Payload.Op) {
		p.reportError(p.errorHere("only '=' is accepted as an initializer operator, found %q", string(tok.Payload.Op)))
		p.advance()
		init, err = p.ExprGreedy(p.statementEnd())
		if err != nil {
			return arena.Nil, err
		}
	}

	id := p.allocAt(start, ast.VarDef{Name: name, IsConst: isConst, Modifiers: mods, Init: init})
	kind := scope.DeclVariable
	if isConst {
		kind = scope.DeclConst
	}
	p.declareIn(s, name, kind, id, p.view.Line(start), p.view.Column(start))
	return id, nil
}

// statementEnd bounds an inline expression that runs to the rest of
// the current statement: the whole remaining view, since this
// language has no statement terminator token and relies on the
// operator scan's own halting rules (comma/keyword/assign-op) to know
// where an expression ends.
func (p *Parser) statementEnd() int {
	return p.view.Len()
}

// funcStatement parses `func NAME (ARGS) [modifiers] { BODY }`
// (spec.md §4.5).
func (p *Parser) funcStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'func'
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}
	if _, err := p.expectBracket(token.LParen); err != nil {
		return arena.Nil, err
	}
	closeIdx := p.matchingClose(p.pos-1, token.LParen, token.RParen, p.statementEnd())
	if closeIdx < 0 {
		return arena.Nil, p.errorAt(p.pos-1, "unbalanced '(' starting here")
	}
	fnScope := scope.NewChild(s, true)
	args, err := p.parseArgList(closeIdx)
	if err != nil {
		return arena.Nil, err
	}
	p.pos = closeIdx + 1
	for _, argName := range args.Names {
		if argName == "" {
			continue
		}
		p.declareIn(fnScope, argName, scope.DeclParameter, arena.Nil, p.view.Line(start), p.view.Column(start))
	}

	var mods ast.FuncModifiers
	for {
		switch {
		case p.matchKeyword("parallel"):
			mods.Parallel = true
		case p.matchKeyword("noparallel"):
			mods.NoParallel = true
		case p.matchKeyword("deprecated"):
			mods.Deprecated = true
		default:
			goto modsDone
		}
	}
modsDone:
	if mods.Parallel && mods.NoParallel {
		p.reportError(p.errorAt(start, "'parallel' and 'noparallel' are mutually exclusive"))
	}

	bodyMode := ModeInFunction
	isMethod := mode.insideClass()
	if isMethod {
		bodyMode = ModeInClassFunction
	}
	if err := p.requireMode(mode == ModeTopLevel || mode.insideClass(), "a nested 'func' statement"); err != nil {
		p.reportError(err)
	}
	body, err := p.block(bodyMode, fnScope)
	if err != nil {
		return arena.Nil, err
	}

	id := p.allocAt(start, ast.FuncDef{Name: name, Args: args, Body: body, Modifiers: mods, Scope: fnScope, IsMethod: isMethod})
	kind := scope.DeclFunction
	p.declareIn(s, name, kind, id, p.view.Line(start), p.view.Column(start))
	return id, nil
}

// classStatement parses `class NAME [extends CHAIN] [modifiers] {
// BODY }` (spec.md §4.5). Body statements must be var or func; they
// are separated into parallel arrays and every member name is
// interned as an attribute as soon as it is seen.
func (p *Parser) classStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'class'
	if err := p.requireMode(mode == ModeTopLevel, "'class'"); err != nil {
		p.reportError(err)
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}

	var base arena.ID = arena.Nil
	if p.matchKeyword("extends") {
		base, err = p.parseDottedChain()
		if err != nil {
			return arena.Nil, err
		}
	}

	var mods ast.ClassModifiers
	for p.matchKeyword("deprecated") {
		mods.Deprecated = true
	}

	classScope := scope.NewChild(s, true)
	if _, err := p.expectBracket(token.LBrace); err != nil {
		return arena.Nil, err
	}
	var vars, funcs []arena.ID
	for !p.checkBracket(token.RBrace) && !p.atEnd() {
		var memberID arena.ID
		var err error
		switch {
		case p.checkKeyword("var"):
			memberID, err = p.varStatement(ModeInClass, classScope, false)
			if err == nil {
				vars = append(vars, memberID)
			}
		case p.checkKeyword("const"):
			memberID, err = p.varStatement(ModeInClass, classScope, true)
			if err == nil {
				vars = append(vars, memberID)
			}
		case p.checkKeyword("func"):
			memberID, err = p.funcStatement(ModeInClass, classScope)
			if err == nil {
				funcs = append(funcs, memberID)
			}
		default:
			err = p.errorHere("class body may only contain 'var' or 'func', found %s", p.view.Describe(p.pos))
		}
		if err != nil {
			p.reportError(err)
			p.recoverWithinBlock()
			continue
		}
		if name, id, ok := memberAttrName(p.unit, memberID); ok {
			p.project.InternAttributeName(name, true)
			_ = id
		}
	}
	if _, err := p.expectBracket(token.RBrace); err != nil {
		return arena.Nil, err
	}

	id := p.allocAt(start, ast.ClassDef{Name: name, Base: base, Modifiers: mods, Scope: classScope, Vars: vars, Funcs: funcs})
	p.declareIn(s, name, scope.DeclClass, id, p.view.Line(start), p.view.Column(start))
	return id, nil
}

func memberAttrName(u *ast.Unit, id arena.ID) (string, arena.ID, bool) {
	if id == arena.Nil {
		return "", arena.Nil, false
	}
	switch d := u.Get(id).Data.(type) {
	case ast.VarDef:
		return d.Name, id, true
	case ast.FuncDef:
		return d.Name, id, true
	default:
		return "", arena.Nil, false
	}
}

// parseDottedChain parses an identifier or dotted-identifier chain
// (used by `extends` and `import`), restricted to exactly that
// production (spec.md §3, §4.5): no calls, indexing, or other
// operators are allowed.
func (p *Parser) parseDottedChain() (arena.ID, error) {
	start := p.pos
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}
	node := p.allocAt(start, ast.Identifier{Name: name})
	for p.checkOp(attrOp) {
		p.advance()
		attr, err := p.expectIdentifier()
		if err != nil {
			return arena.Nil, err
		}
		node = p.allocAt(start, ast.Attribute{Object: node, Name: attr})
	}
	return node, nil
}

// doStatement parses `do { ... } [rescue ...]* [finally { ... }]`
// (spec.md §4.5).
func (p *Parser) doStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'do'
	if err := p.requireMode(mode.insideFunction(), "'do'"); err != nil {
		p.reportError(err)
	}
	bodyScope := scope.NewChild(s, false)
	body, err := p.block(mode, bodyScope)
	if err != nil {
		return arena.Nil, err
	}

	var rescues []ast.Rescue
	for p.matchKeyword("rescue") {
		rs, err := p.rescueClause(mode, s)
		if err != nil {
			return arena.Nil, err
		}
		rescues = append(rescues, rs)
	}
	var finallyBody []arena.ID
	if p.matchKeyword("finally") {
		finallyScope := scope.NewChild(s, false)
		finallyBody, err = p.block(mode, finallyScope)
		if err != nil {
			return arena.Nil, err
		}
	}
	if len(rescues) == 0 && finallyBody == nil {
		p.reportError(p.errorAt(start, "'do' requires at least one 'rescue' or a 'finally' clause"))
	}
	return p.allocAt(start, ast.Do{Body: body, Rescues: rescues, Finally: finallyBody}), nil
}

func (p *Parser) rescueClause(mode Mode, s *scope.Scope) (ast.Rescue, error) {
	var types []arena.ID
	for {
		t, err := p.parseDottedChain()
		if err != nil {
			return ast.Rescue{}, err
		}
		types = append(types, t)
		if p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	name := ""
	rescueScope := scope.NewChild(s, false)
	if p.matchKeyword("as") {
		var err error
		name, err = p.expectIdentifier()
		if err != nil {
			return ast.Rescue{}, err
		}
		p.declareIn(rescueScope, name, scope.DeclCaughtError, arena.Nil, p.view.Line(p.pos), p.view.Column(p.pos))
	}
	body, err := p.block(mode, rescueScope)
	if err != nil {
		return ast.Rescue{}, err
	}
	return ast.Rescue{Types: types, As: name, Body: body, Scope: rescueScope}, nil
}

// ifStatement parses `if COND { ... } [elseif COND { ... }]* [else {
// ... }]` (spec.md §4.5). Each branch gets its own scope at the same
// nesting level; `else` must be last, which the grammar already
// enforces since `elseif` and `else` are each consumed in their own
// loop/branch.
func (p *Parser) ifStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'if'
	if err := p.requireMode(mode.insideFunction(), "'if'"); err != nil {
		p.reportError(err)
	}
	cond, err := p.ExprGreedy(p.findBraceBoundary())
	if err != nil {
		return arena.Nil, err
	}
	thenScope := scope.NewChild(s, false)
	thenBody, err := p.block(mode, thenScope)
	if err != nil {
		return arena.Nil, err
	}

	var elseIfs []ast.ElseIf
	for p.matchKeyword("elseif") {
		eiCond, err := p.ExprGreedy(p.findBraceBoundary())
		if err != nil {
			return arena.Nil, err
		}
		eiScope := scope.NewChild(s, false)
		eiBody, err := p.block(mode, eiScope)
		if err != nil {
			return arena.Nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIf{Cond: eiCond, Body: eiBody, Scope: eiScope})
	}

	var elseBody []arena.ID
	var elseScope *scope.Scope
	if p.matchKeyword("else") {
		elseScope = scope.NewChild(s, false)
		elseBody, err = p.block(mode, elseScope)
		if err != nil {
			return arena.Nil, err
		}
	}

	return p.allocAt(start, ast.If{
		Cond: cond, Then: thenBody, ThenScope: thenScope,
		ElseIfs: elseIfs, Else: elseBody, ElseScope: elseScope,
	}), nil
}

// findBraceBoundary returns the index of the next depth-0 '{', used to
// bound a condition expression that precedes a block body. Falls back
// to the statement-end bound if none is found so the expression parser
// still halts somewhere reasonable.
func (p *Parser) findBraceBoundary() int {
	depth := 0
	for i := p.pos; i < p.view.Len(); i++ {
		tok := p.view.At(i)
		if tok.Kind != token.BRACKET {
			continue
		}
		switch tok.Payload.Bracket {
		case token.LParen, token.LBracket, token.CallOpen, token.IndexOpen:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.LBrace:
			if depth == 0 {
				return i
			}
			depth++
		case token.RBrace:
			depth--
		}
	}
	return p.view.Len()
}

func (p *Parser) whileStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'while'
	if err := p.requireMode(mode.insideFunction(), "'while'"); err != nil {
		p.reportError(err)
	}
	cond, err := p.ExprGreedy(p.findBraceBoundary())
	if err != nil {
		return arena.Nil, err
	}
	bodyScope := scope.NewChild(s, false)
	body, err := p.block(mode, bodyScope)
	if err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.While{Cond: cond, Body: body, Scope: bodyScope}), nil
}

// forStatement parses `for NAME in EXPR { ... }`; NAME is added to the
// inner (body) scope, not the enclosing one (spec.md §4.5).
func (p *Parser) forStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'for'
	if err := p.requireMode(mode.insideFunction(), "'for'"); err != nil {
		p.reportError(err)
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return arena.Nil, err
	}
	iterable, err := p.ExprGreedy(p.findBraceBoundary())
	if err != nil {
		return arena.Nil, err
	}
	bodyScope := scope.NewChild(s, false)
	p.declareIn(bodyScope, name, scope.DeclForIterator, arena.Nil, p.view.Line(start), p.view.Column(start))
	body, err := p.block(mode, bodyScope)
	if err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.For{IterName: name, Iterable: iterable, Body: body, Scope: bodyScope}), nil
}

// withStatement parses `with EXPR as NAME[, EXPR as NAME...] { BODY }`
// (spec.md §4.5); each clause's NAME is added to the with scope.
func (p *Parser) withStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'with'
	if err := p.requireMode(mode.insideFunction(), "'with'"); err != nil {
		p.reportError(err)
	}
	withScope := scope.NewChild(s, false)
	var clauses []ast.WithClause
	for {
		expr, err := p.ExprGreedy(p.findBraceBoundary())
		if err != nil {
			return arena.Nil, err
		}
		if err := p.expectKeyword("as"); err != nil {
			return arena.Nil, err
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return arena.Nil, err
		}
		p.declareIn(withScope, name, scope.DeclVariable, arena.Nil, p.view.Line(start), p.view.Column(start))
		clauses = append(clauses, ast.WithClause{Expr: expr, Name: name})
		if p.checkKind(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	body, err := p.block(mode, withScope)
	if err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.With{Clauses: clauses, Body: body, Scope: withScope}), nil
}

// importStatement parses `import A.B.C [from LIB] [as NAME]` (spec.md
// §4.5), registering the declared name under import-stacking rules.
func (p *Parser) importStatement(mode Mode, s *scope.Scope) (arena.ID, error) {
	start := p.pos
	p.advance() // 'import'
	if err := p.requireMode(mode == ModeTopLevel, "'import'"); err != nil {
		p.reportError(err)
	}
	var path []string
	first, err := p.expectIdentifier()
	if err != nil {
		return arena.Nil, err
	}
	path = append(path, first)
	for p.checkOp(attrOp) {
		p.advance()
		part, err := p.expectIdentifier()
		if err != nil {
			return arena.Nil, err
		}
		path = append(path, part)
	}
	lib := ""
	if p.matchKeyword("from") {
		lib, err = p.expectIdentifier()
		if err != nil {
			return arena.Nil, err
		}
	}
	as := ""
	if p.matchKeyword("as") {
		as, err = p.expectIdentifier()
		if err != nil {
			return arena.Nil, err
		}
	}

	declared := first
	if as != "" {
		declared = as
	}
	id := p.allocAt(start, ast.Import{Path: path, Lib: lib, As: as})
	p.declareWithPath(s, declared, scope.DeclImport, id, p.view.Line(start), p.view.Column(start), scope.ImportPath(path))
	return id, nil
}

func (p *Parser) returnStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance() // 'return'
	if err := p.requireMode(mode.insideFunction(), "'return'"); err != nil {
		p.reportError(err)
	}
	var value arena.ID = arena.Nil
	if !p.atStatementBoundary() {
		var err error
		value, err = p.ExprGreedy(p.statementEnd())
		if err != nil {
			return arena.Nil, err
		}
	}
	return p.allocAt(start, ast.Return{Value: value}), nil
}

func (p *Parser) raiseStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance() // 'raise'
	if err := p.requireMode(mode.insideFunction(), "'raise'"); err != nil {
		p.reportError(err)
	}
	value, err := p.ExprGreedy(p.statementEnd())
	if err != nil {
		return arena.Nil, err
	}
	return p.allocAt(start, ast.Raise{Value: value}), nil
}

func (p *Parser) breakStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance()
	if err := p.requireMode(mode.insideFunction(), "'break'"); err != nil {
		p.reportError(err)
	}
	return p.allocAt(start, ast.Break{}), nil
}

func (p *Parser) continueStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance()
	if err := p.requireMode(mode.insideFunction(), "'continue'"); err != nil {
		p.reportError(err)
	}
	return p.allocAt(start, ast.Continue{}), nil
}

// awaitStatement parses `await EXPR`; EXPR must be an identifier ref,
// attribute access, indexing, or call (spec.md §4.5).
func (p *Parser) awaitStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance() // 'await'
	if err := p.requireMode(mode.insideFunction(), "'await'"); err != nil {
		p.reportError(err)
	}
	value, err := p.ExprGreedy(p.statementEnd())
	if err != nil {
		return arena.Nil, err
	}
	if !isAwaitable(p.unit, value) {
		p.reportError(p.errorAt(start, "'await' requires an identifier, attribute, index, or call expression"))
	}
	return p.allocAt(start, ast.Await{Value: value}), nil
}

func isAwaitable(u *ast.Unit, id arena.ID) bool {
	if id == arena.Nil {
		return false
	}
	switch u.Get(id).Data.(type) {
	case ast.Identifier, ast.Attribute, ast.Index, ast.Call:
		return true
	default:
		return false
	}
}

// asyncStatement parses `async CALLEXPR`: the inner expression must be
// a call, rewritten in place into a call node with IsAsync=true
// (spec.md §4.5).
func (p *Parser) asyncStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	p.advance() // 'async'
	if err := p.requireMode(mode.insideFunction(), "'async'"); err != nil {
		p.reportError(err)
	}
	value, err := p.ExprGreedy(p.statementEnd())
	if err != nil {
		return arena.Nil, err
	}
	node := p.unit.Get(value)
	call, ok := node.Data.(ast.Call)
	if !ok {
		p.reportError(p.errorAt(start, "'async' requires a call expression"))
		return p.allocAt(start, ast.ExprStmt{Expr: value}), nil
	}
	call.IsAsync = true
	node.Data = call
	return value, nil
}

// exprStatement parses an inline expression used as a statement: an
// assignment (requiring an l-value target) or a bare call statement
// (spec.md §4.5's final table row). Anything else is rejected since a
// bare non-call expression has no observable effect as a statement.
func (p *Parser) exprStatement(mode Mode) (arena.ID, error) {
	start := p.pos
	value, err := p.ExprGreedy(p.statementEnd())
	if err != nil {
		return arena.Nil, err
	}

	if tok := p.peek(); tok.Kind == token.BINOP && isAssignOp(tok.Payload.Op) {
		op := tok.Payload.Op
		p.advance()
		if !ast.IsLValue(p.unit.Get, value) {
			p.reportError(p.errorAt(start, "assignment target is not a valid l-value"))
		}
		rhs, err := p.ExprGreedy(p.statementEnd())
		if err != nil {
			return arena.Nil, err
		}
		assign := p.allocAt(start, ast.Assign{Op: op, Target: value, Value: rhs})
		return p.allocAt(start, ast.ExprStmt{Expr: assign}), nil
	}

	if _, ok := p.unit.Get(value).Data.(ast.Call); ok {
		return p.allocAt(start, ast.ExprStmt{Expr: value}), nil
	}

	return arena.Nil, p.errorAt(start, "expression result discarded: only assignments and calls are valid statements")
}

// atStatementBoundary reports whether the current position looks like
// the start of the next statement (used by `return`'s optional value,
// which has no other terminator to check for).
func (p *Parser) atStatementBoundary() bool {
	if p.atEnd() {
		return true
	}
	if p.checkBracket(token.RBrace) {
		return true
	}
	tok := p.peek()
	return tok.Kind == token.KEYWORD && statementStarters[tok.Payload.Str]
}
