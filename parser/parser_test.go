package parser

import (
	"testing"

	"corelang/arena"
	"corelang/ast"
	"corelang/scope"
	"corelang/token"
)

func idTok(name string) token.Token {
	return token.Make(token.IDENTIFIER, 1, 1, token.Payload{Str: name})
}

func kwTok(word string) token.Token {
	return token.Make(token.KEYWORD, 1, 1, token.Payload{Str: word})
}

func intTok(v int64) token.Token {
	return token.Make(token.INT, 1, 1, token.Payload{Int: v})
}

func binTok(op token.Op) token.Token {
	return token.Make(token.BINOP, 1, 1, token.Payload{Op: op})
}

func unTok(op token.Op) token.Token {
	return token.Make(token.UNOP, 1, 1, token.Payload{Op: op})
}

func bracketTok(b token.BracketChar) token.Token {
	return token.Make(token.BRACKET, 1, 1, token.Payload{Bracket: b})
}

func commaTok() token.Token {
	return token.Make(token.COMMA, 1, 1, token.Payload{})
}

func colonTok() token.Token {
	return token.Make(token.COLON, 1, 1, token.Payload{})
}

func mapArrowTok() token.Token {
	return token.Make(token.MAPARROW, 1, 1, token.Payload{})
}

func inlineArrowTok() token.Token {
	return token.Make(token.INLINEARROW, 1, 1, token.Payload{})
}

func newParser(tokens []token.Token) *Parser {
	return New(tokens, "test.corelang", NewSimpleProject(scope.WarningConfig{}))
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	// var x = 1 + 2
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		intTok(1), binTok(token.OpAdd), intTok(2),
	}
	p := newParser(tokens)
	unit := p.Parse()

	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	if len(unit.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(unit.Statements))
	}
	def, ok := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	if !ok {
		t.Fatalf("expected VarDef, got %T", unit.Get(unit.Statements[0]).Data)
	}
	if def.Name != "x" || def.IsConst {
		t.Fatalf("unexpected VarDef %+v", def)
	}
	bin, ok := unit.Get(def.Init).Data.(ast.Binary)
	if !ok || bin.Op != token.OpAdd {
		t.Fatalf("expected top-level '+' binary, got %+v", unit.Get(def.Init).Data)
	}
	if unit.Global.Query("x", 0) == nil {
		t.Fatal("expected 'x' to be declared in the global scope")
	}
}

func TestParsePrecedenceClimbsCorrectly(t *testing.T) {
	// var x = 1 + 2 * 3  ->  1 + (2 * 3)
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		intTok(1), binTok(token.OpAdd), intTok(2), binTok(token.OpMul), intTok(3),
	}
	p := newParser(tokens)
	unit := p.Parse()
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	top := unit.Get(def.Init).Data.(ast.Binary)
	if top.Op != token.OpAdd {
		t.Fatalf("expected top operator '+', got %q", top.Op)
	}
	right := unit.Get(top.Right).Data.(ast.Binary)
	if right.Op != token.OpMul {
		t.Fatalf("expected right operand to be a '*' binary, got %+v", right)
	}
}

func TestParseLeftAssociativeSubtraction(t *testing.T) {
	// var x = 1 - 2 - 3  ->  (1 - 2) - 3
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		intTok(1), binTok(token.OpSub), intTok(2), binTok(token.OpSub), intTok(3),
	}
	p := newParser(tokens)
	unit := p.Parse()
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	top := unit.Get(def.Init).Data.(ast.Binary)
	if top.Op != token.OpSub {
		t.Fatalf("expected top operator '-', got %q", top.Op)
	}
	leftLit, leftIsLit := unit.Get(top.Left).Data.(ast.Binary)
	if !leftIsLit {
		t.Fatalf("expected left operand to itself be a binary (left-associative), got %T", unit.Get(top.Left).Data)
	}
	if leftLit.Op != token.OpSub {
		t.Fatalf("expected inner operator '-', got %q", leftLit.Op)
	}
	rightLit := unit.Get(top.Right).Data.(ast.Literal)
	if rightLit.Value.(int64) != 3 {
		t.Fatalf("expected right operand 3, got %v", rightLit.Value)
	}
}

func TestParseCallExpressionStatement(t *testing.T) {
	// foo(1, 2)
	tokens := []token.Token{
		idTok("foo"), bracketTok(token.CallOpen), intTok(1), commaTok(), intTok(2), bracketTok(token.RParen),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	stmt, ok := unit.Get(unit.Statements[0]).Data.(ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", unit.Get(unit.Statements[0]).Data)
	}
	call, ok := unit.Get(stmt.Expr).Data.(ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", unit.Get(stmt.Expr).Data)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseBareExpressionStatementRejected(t *testing.T) {
	// 1 + 2   (not an assignment or call: invalid as a statement)
	tokens := []token.Token{intTok(1), binTok(token.OpAdd), intTok(2)}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for a discarded expression result")
	}
}

func TestParseAssignmentRequiresLValue(t *testing.T) {
	// 1 = 2
	tokens := []token.Token{intTok(1), binTok(token.OpAssign), intTok(2)}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected an l-value diagnostic")
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	// func f() { if true { } elseif false { } else { } }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("if"), token.Make(token.BOOL, 1, 1, token.Payload{Bool: true}), bracketTok(token.LBrace), bracketTok(token.RBrace),
		kwTok("elseif"), token.Make(token.BOOL, 1, 1, token.Payload{Bool: false}), bracketTok(token.LBrace), bracketTok(token.RBrace),
		kwTok("else"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	ifStmt := unit.Get(fn.Body[0]).Data.(ast.If)
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif, got %d", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseTopLevelOnlyStatementOutsideFunctionReported(t *testing.T) {
	// `return 1` at top level is illegal
	tokens := []token.Token{kwTok("return"), intTok(1)}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for 'return' outside a function")
	}
}

func TestParseUnbalancedBracketRecovers(t *testing.T) {
	// var x = (1 + 2    -- missing ')'
	// var y = 3
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LParen), intTok(1), binTok(token.OpAdd), intTok(2),
		kwTok("var"), idTok("y"), binTok(token.OpAssign), intTok(3),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for the unbalanced '('")
	}
	foundY := false
	for _, id := range unit.Statements {
		if def, ok := unit.Get(id).Data.(ast.VarDef); ok && def.Name == "y" {
			foundY = true
		}
	}
	if !foundY {
		t.Fatal("expected recovery to still parse 'var y = 3'")
	}
}

func TestParseUnaryMinus(t *testing.T) {
	// var x = -1
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign), unTok(token.OpSub), intTok(1),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	un, ok := unit.Get(def.Init).Data.(ast.Unary)
	if !ok || un.Op != token.OpSub {
		t.Fatalf("expected unary '-', got %+v", unit.Get(def.Init).Data)
	}
}

func TestParseEmptyMapLiteral(t *testing.T) {
	// var x = {=>}
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBrace), mapArrowTok(), bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	m, ok := unit.Get(def.Init).Data.(ast.MapCtor)
	if !ok {
		t.Fatalf("expected MapCtor, got %T", unit.Get(def.Init).Data)
	}
	if len(m.Keys) != 0 || len(m.Values) != 0 {
		t.Fatalf("expected an empty map, got %+v", m)
	}
}

func TestParseEmptySetLiteral(t *testing.T) {
	// var x = {}
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBrace), bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	if _, ok := unit.Get(def.Init).Data.(ast.SetCtor); !ok {
		t.Fatalf("expected SetCtor, got %T", unit.Get(def.Init).Data)
	}
}

func TestParseMapLiteralWithEntries(t *testing.T) {
	// var x = {1 => 2, 3 => 4}
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBrace),
		intTok(1), mapArrowTok(), intTok(2), commaTok(),
		intTok(3), mapArrowTok(), intTok(4),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	m, ok := unit.Get(def.Init).Data.(ast.MapCtor)
	if !ok {
		t.Fatalf("expected MapCtor, got %T", unit.Get(def.Init).Data)
	}
	if len(m.Keys) != 2 || len(m.Values) != 2 {
		t.Fatalf("expected 2 entries, got %+v", m)
	}
}

func TestParseSetLiteralWithElements(t *testing.T) {
	// var x = {1, 2}
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBrace), intTok(1), commaTok(), intTok(2), bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	set, ok := unit.Get(def.Init).Data.(ast.SetCtor)
	if !ok || len(set.Elements) != 2 {
		t.Fatalf("expected a 2-element SetCtor, got %+v", unit.Get(def.Init).Data)
	}
}

func TestParseListLiteral(t *testing.T) {
	// var x = [1, 2, 3]
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBracket), intTok(1), commaTok(), intTok(2), commaTok(), intTok(3), bracketTok(token.RBracket),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	list, ok := unit.Get(def.Init).Data.(ast.ListCtor)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected a 3-element ListCtor, got %+v", unit.Get(def.Init).Data)
	}
}

func TestParseEmptyListLiteral(t *testing.T) {
	// var x = []
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBracket), bracketTok(token.RBracket),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	list, ok := unit.Get(def.Init).Data.(ast.ListCtor)
	if !ok || len(list.Elements) != 0 {
		t.Fatalf("expected an empty ListCtor, got %+v", unit.Get(def.Init).Data)
	}
}

func TestParseVectorLiteral(t *testing.T) {
	// var x = [x: 1, y: 2]
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		bracketTok(token.LBracket),
		idTok("x"), colonTok(), intTok(1), commaTok(),
		idTok("y"), colonTok(), intTok(2),
		bracketTok(token.RBracket),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	vec, ok := unit.Get(def.Init).Data.(ast.VectorCtor)
	if !ok {
		t.Fatalf("expected VectorCtor, got %T", unit.Get(def.Init).Data)
	}
	if len(vec.Components) != 2 || vec.Labels[0] != "x" || vec.Labels[1] != "y" {
		t.Fatalf("unexpected vector %+v", vec)
	}
}

func TestParseGivenExpression(t *testing.T) {
	// var x = given true then (1 else 2)
	tokens := []token.Token{
		kwTok("var"), idTok("x"), binTok(token.OpAssign),
		kwTok("given"), token.Make(token.BOOL, 1, 1, token.Payload{Bool: true}),
		kwTok("then"), bracketTok(token.LParen), intTok(1), kwTok("else"), intTok(2), bracketTok(token.RParen),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	given, ok := unit.Get(def.Init).Data.(ast.Given)
	if !ok {
		t.Fatalf("expected Given, got %T", unit.Get(def.Init).Data)
	}
	then := unit.Get(given.Then).Data.(ast.Literal)
	if then.Value.(int64) != 1 {
		t.Fatalf("expected then-branch 1, got %v", then.Value)
	}
}

func TestParseInlineFuncBareIdentifier(t *testing.T) {
	// var f = x => (x)
	tokens := []token.Token{
		kwTok("var"), idTok("f"), binTok(token.OpAssign),
		idTok("x"), inlineArrowTok(), bracketTok(token.LParen), idTok("x"), bracketTok(token.RParen),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	fn, ok := unit.Get(def.Init).Data.(ast.InlineFunc)
	if !ok {
		t.Fatalf("expected InlineFunc, got %T", unit.Get(def.Init).Data)
	}
	if len(fn.Args.Names) != 1 || fn.Args.Names[0] != "x" {
		t.Fatalf("expected single parameter 'x', got %+v", fn.Args)
	}
}

func TestParseInlineFuncParenArgs(t *testing.T) {
	// var f = (a, b) => (a)
	tokens := []token.Token{
		kwTok("var"), idTok("f"), binTok(token.OpAssign),
		bracketTok(token.LParen), idTok("a"), commaTok(), idTok("b"), bracketTok(token.RParen),
		inlineArrowTok(), bracketTok(token.LParen), idTok("a"), bracketTok(token.RParen),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	def := unit.Get(unit.Statements[0]).Data.(ast.VarDef)
	fn, ok := unit.Get(def.Init).Data.(ast.InlineFunc)
	if !ok {
		t.Fatalf("expected InlineFunc, got %T", unit.Get(def.Init).Data)
	}
	if len(fn.Args.Names) != 2 || fn.Args.Names[0] != "a" || fn.Args.Names[1] != "b" {
		t.Fatalf("expected parameters a,b, got %+v", fn.Args)
	}
}

func TestParseClassWithVarAndFunc(t *testing.T) {
	// class C { var v func m() { } }
	tokens := []token.Token{
		kwTok("class"), idTok("C"), bracketTok(token.LBrace),
		kwTok("var"), idTok("v"),
		kwTok("func"), idTok("m"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace), bracketTok(token.RBrace),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	cls, ok := unit.Get(unit.Statements[0]).Data.(ast.ClassDef)
	if !ok {
		t.Fatalf("expected ClassDef, got %T", unit.Get(unit.Statements[0]).Data)
	}
	if len(cls.Vars) != 1 || len(cls.Funcs) != 1 {
		t.Fatalf("expected 1 var and 1 func member, got %+v", cls)
	}
}

func TestParseClassExtends(t *testing.T) {
	// class C extends Base { }
	tokens := []token.Token{
		kwTok("class"), idTok("C"), kwTok("extends"), idTok("Base"),
		bracketTok(token.LBrace), bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	cls := unit.Get(unit.Statements[0]).Data.(ast.ClassDef)
	if cls.Base == arena.Nil {
		t.Fatal("expected a base class reference")
	}
	base, ok := unit.Get(cls.Base).Data.(ast.Identifier)
	if !ok || base.Name != "Base" {
		t.Fatalf("expected base identifier 'Base', got %+v", unit.Get(cls.Base).Data)
	}
}

func TestParseDoRescueFinally(t *testing.T) {
	// func f() { do { } rescue Err as e { } finally { } }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("do"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		kwTok("rescue"), idTok("Err"), kwTok("as"), idTok("e"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		kwTok("finally"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	do, ok := unit.Get(fn.Body[0]).Data.(ast.Do)
	if !ok {
		t.Fatalf("expected Do, got %T", unit.Get(fn.Body[0]).Data)
	}
	if len(do.Rescues) != 1 || do.Rescues[0].As != "e" {
		t.Fatalf("expected 1 rescue bound as 'e', got %+v", do.Rescues)
	}
	if do.Finally == nil {
		t.Fatal("expected a finally body")
	}
}

func TestParseDoWithoutRescueOrFinallyWarns(t *testing.T) {
	// func f() { do { } }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("do"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for a 'do' with neither rescue nor finally")
	}
}

func TestParseWithStatement(t *testing.T) {
	// func f() { with foo() as r { } }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("with"), idTok("foo"), bracketTok(token.CallOpen), bracketTok(token.RParen),
		kwTok("as"), idTok("r"), bracketTok(token.LBrace), bracketTok(token.RBrace),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	with, ok := unit.Get(fn.Body[0]).Data.(ast.With)
	if !ok {
		t.Fatalf("expected With, got %T", unit.Get(fn.Body[0]).Data)
	}
	if len(with.Clauses) != 1 || with.Clauses[0].Name != "r" {
		t.Fatalf("expected 1 clause bound as 'r', got %+v", with.Clauses)
	}
}

func TestParseImportWithPathAndAlias(t *testing.T) {
	// import a.b as c
	tokens := []token.Token{
		kwTok("import"), idTok("a"), binTok(attrOp), idTok("b"), kwTok("as"), idTok("c"),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	imp, ok := unit.Get(unit.Statements[0]).Data.(ast.Import)
	if !ok {
		t.Fatalf("expected Import, got %T", unit.Get(unit.Statements[0]).Data)
	}
	if len(imp.Path) != 2 || imp.Path[0] != "a" || imp.Path[1] != "b" || imp.As != "c" {
		t.Fatalf("unexpected Import %+v", imp)
	}
	if unit.Global.Query("c", 0) == nil {
		t.Fatal("expected the alias 'c' to be declared in the global scope")
	}
}

func TestParseRaiseStatement(t *testing.T) {
	// func f() { raise err }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("raise"), idTok("err"),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	raise, ok := unit.Get(fn.Body[0]).Data.(ast.Raise)
	if !ok {
		t.Fatalf("expected Raise, got %T", unit.Get(fn.Body[0]).Data)
	}
	if _, ok := unit.Get(raise.Value).Data.(ast.Identifier); !ok {
		t.Fatalf("expected raise value to be an identifier, got %T", unit.Get(raise.Value).Data)
	}
}

func TestParseAwaitStatement(t *testing.T) {
	// func f() { await foo() }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("await"), idTok("foo"), bracketTok(token.CallOpen), bracketTok(token.RParen),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	await, ok := unit.Get(fn.Body[0]).Data.(ast.Await)
	if !ok {
		t.Fatalf("expected Await, got %T", unit.Get(fn.Body[0]).Data)
	}
	if _, ok := unit.Get(await.Value).Data.(ast.Call); !ok {
		t.Fatalf("expected awaited value to be a call, got %T", unit.Get(await.Value).Data)
	}
}

func TestParseAwaitNonAwaitableReported(t *testing.T) {
	// func f() { await 1 }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("await"), intTok(1),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for awaiting a non-awaitable expression")
	}
}

func TestParseAsyncStatement(t *testing.T) {
	// func f() { async foo() }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("async"), idTok("foo"), bracketTok(token.CallOpen), bracketTok(token.RParen),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", unit.Messages)
	}
	fn := unit.Get(unit.Statements[0]).Data.(ast.FuncDef)
	call, ok := unit.Get(fn.Body[0]).Data.(ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", unit.Get(fn.Body[0]).Data)
	}
	if !call.IsAsync {
		t.Fatal("expected the call to be marked IsAsync")
	}
}

func TestParseAsyncNonCallReported(t *testing.T) {
	// func f() { async 1 }
	tokens := []token.Token{
		kwTok("func"), idTok("f"), bracketTok(token.LParen), bracketTok(token.RParen),
		bracketTok(token.LBrace),
		kwTok("async"), intTok(1),
		bracketTok(token.RBrace),
	}
	p := newParser(tokens)
	unit := p.Parse()
	if len(unit.Messages) == 0 {
		t.Fatal("expected a diagnostic for 'async' on a non-call expression")
	}
}
