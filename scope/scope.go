// Package scope implements the per-lexical-scope symbol table used by
// the parser (spec.md §4.2). Each Scope is embedded in the AST node
// that introduces it (func/class/if/while/for/with bodies and rescue
// clauses; a do statement's own body scope is not kept on the Do node);
// freeing that node frees the scope, so this package owns no
// independent lifecycle.
package scope

import "fmt"

// QueryFlags controls how Query walks the scope chain.
type QueryFlags int

const (
	// BubbleUp makes Query search enclosing scopes when name is not
	// found locally.
	BubbleUp QueryFlags = 1 << iota
	// QueryClassItems includes class member symbols (declared on a
	// class body's scope) in the search.
	QueryClassItems
)

// DeclKind classifies what a scope-def declares, used to report the
// kind of a conflicting prior declaration (spec.md §7).
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclConst
	DeclFunction
	DeclClass
	DeclImport
	DeclForIterator
	DeclCaughtError
	DeclParameter
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "variable"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclImport:
		return "import"
	case DeclForIterator:
		return "for-iterator"
	case DeclCaughtError:
		return "caught-error"
	case DeclParameter:
		return "parameter"
	default:
		return "declaration"
	}
}

// ImportPath is the dotted element path of a single `import` statement,
// used to tell apart legally-stacked imports of the same top-level name
// (spec.md §3: "an identifier may be added twice only when both
// additions are import statements with distinct element paths").
type ImportPath []string

func (p ImportPath) equal(other ImportPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p ImportPath) String() string {
	s := ""
	for i, part := range p {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}

// DeclRef is an opaque handle to the declaring AST node, kept generic so
// the scope package has no import-cycle dependency on ast.
type DeclRef any

// Def is the record registered in a Scope for a named entity (the
// "scope-def" of spec.md §3).
type Def struct {
	Name    string
	Kind    DeclKind
	Decl    DeclRef
	Scope   *Scope // the scope that owns this declaration
	Line    int32
	Column  int32

	// ImportPath is set only when Kind == DeclImport; it lets Add
	// distinguish a legal stacked import from a duplicate.
	ImportPath ImportPath

	// Additional holds further import declarations stacked onto this
	// same name under the import-stacking rule. Only ever populated
	// when Kind == DeclImport.
	Additional []*Def

	// IsFunctionParameter marks a Def introduced by a function's
	// argument list, used by the forbidden-shadow check.
IsFunctionParameter bool
}

// Scope is a symbol table for one lexical scope, chained to its parent.
type Scope struct {
	parent   *Scope
	names    map[string]*Def
	level    int  // class-and-function nesting level
	isGlobal bool

	// owningFuncLevel is the nesting level of the function this scope
	// is (transitively) a block of; block scopes (if/while/for bodies)
	// share their enclosing function's level, so shadow classification
	// can tell "outer local of same function" from "outer local of a
	// parent function" (spec.md §4.2 table).
	owningFuncLevel int
}

// NewGlobal creates the root (global) scope of a translation unit.
func NewGlobal() *Scope {
	return &Scope{
		names:    make(map[string]*Def),
		isGlobal: true,
	}
}

// NewChild creates a scope nested inside parent. crossesFuncOrClass
// must be true exactly when the new scope is a function or class body
// (as opposed to an if/while/for/with/do block, which shares its
// enclosing function's level).
func NewChild(parent *Scope, crossesFuncOrClass bool) *Scope {
	child := &Scope{
		parent: parent,
		names:  make(map[string]*Def),
	}
	if crossesFuncOrClass {
		child.level = parent.level + 1
		child.owningFuncLevel = child.level
	} else {
		child.level = parent.level
		child.owningFuncLevel = parent.owningFuncLevel
	}
	return child
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// IsGlobal reports whether this is the translation unit's root scope.
func (s *Scope) IsGlobal() bool { return s.isGlobal }

// Level returns the class-and-function nesting level of this scope.
func (s *Scope) Level() int { return s.level }

// reservedNames can never be declared in any scope (spec.md §4.2).
var reservedNames = map[string]bool{"self": true, "base": true}

// Query looks up name starting at s. With BubbleUp set it walks to
// enclosing scopes on a local miss. QueryClassItems is accepted for
// interface parity with the C original but class-item visibility is
// determined by the caller passing the class body's own Scope as s;
// this implementation does not special-case it further since Go's
// scope chain already makes class members reachable via the normal
// parent walk once the class scope is in the chain.
func (s *Scope) Query(name string, flags QueryFlags) *Def {
	cur := s
	for cur != nil {
		if def, ok := cur.names[name]; ok {
			return def
		}
		if flags&BubbleUp == 0 {
			return nil
		}
		cur = cur.parent
	}
	return nil
}

// ShadowSeverity classifies the outcome of declaring name in s, given
// that an outer binding already exists, per the spec.md §4.2 table.
type ShadowSeverity int

const (
	ShadowNone ShadowSeverity = iota
	ShadowErrorDuplicate
	ShadowErrorForbiddenParam
	ShadowWarnDirectLocal
	ShadowWarnParentFuncLocal
	ShadowWarnGlobal
)

// WarningConfig gates which shadow situations are reported as warnings
// (spec.md §4.2). Configuration loading itself is out of scope; the
// external driver populates this struct.
type WarningConfig struct {
	ShadowingDirectLocals     bool
	ShadowingParentFuncLocals bool
	ShadowingGlobals          bool
}

// classifyShadow determines the severity of shadowing outer with a new
// declaration in s, assuming outer != nil.
func classifyShadow(s *Scope, outer *Def, cfg WarningConfig) ShadowSeverity {
	if outer.IsFunctionParameter && outer.Scope.owningFuncLevel == s.owningFuncLevel {
		return ShadowErrorForbiddenParam
	}
	if outer.Scope.isGlobal {
		if cfg.ShadowingGlobals {
			return ShadowWarnGlobal
		}
		return ShadowNone
	}
	if outer.Scope.owningFuncLevel == s.owningFuncLevel {
		if cfg.ShadowingDirectLocals {
			return ShadowWarnDirectLocal
		}
		return ShadowNone
	}
	if cfg.ShadowingParentFuncLocals {
		return ShadowWarnParentFuncLocal
	}
	return ShadowNone
}

// AddResult reports what Add decided.
type AddResult struct {
	Def      *Def
	Shadow   ShadowSeverity
	ShadowOf *Def // the outer declaration triggering Shadow, if any

	// Err is non-nil for a genuine failure: duplicate declaration,
	// reserved-identifier misuse, or out of memory. Shadow warnings are
	// not errors and Err is nil for them.
	Err error

	// OutOfMemory is set distinctly from a duplicate/reserved failure,
	// per spec.md §4.2's "Signals out-of-memory distinctly".
	OutOfMemory bool
}

// DuplicateError reports a same-scope redeclaration, carrying the prior
// declaration's location and kind (spec.md §7).
type DuplicateError struct {
	Name        string
	PriorKind   DeclKind
	PriorLine   int32
	PriorColumn int32
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf(
		"duplicate %s %q, previously declared at line %d, column %d",
		e.PriorKind, e.Name, e.PriorLine, e.PriorColumn,
	)
}

// ReservedIdentifierError reports an attempt to declare self/base.
type ReservedIdentifierError struct {
	Name string
}

func (e *ReservedIdentifierError) Error() string {
	return fmt.Sprintf("%q is a reserved identifier and cannot be declared", e.Name)
}

// ForbiddenShadowError reports re-declaring a visible function
// parameter of the same function.
type ForbiddenShadowError struct {
	Name        string
	PriorLine   int32
	PriorColumn int32
}

func (e *ForbiddenShadowError) Error() string {
	return fmt.Sprintf(
		"%q shadows a parameter of the same function declared at line %d, column %d",
		e.Name, e.PriorLine, e.PriorColumn,
	)
}

// Add registers name in s, declared by decl (an opaque AST node
// reference) of the given kind at (line, column). importPath must be
// non-nil iff kind == DeclImport.
func (s *Scope) Add(name string, kind DeclKind, decl DeclRef, line, column int32, importPath ImportPath, cfg WarningConfig) AddResult {
	if reservedNames[name] {
		return AddResult{Err: &ReservedIdentifierError{Name: name}}
	}

	newDef := &Def{
		Name: name, Kind: kind, Decl: decl, Scope: s,
		Line: line, Column: column, ImportPath: importPath,
		IsFunctionParameter: kind == DeclParameter,
	}

	if existing, ok := s.names[name]; ok {
		if kind == DeclImport && existing.Kind == DeclImport {
			if importStacksLegally(existing, importPath) {
				existing.Additional = append(existing.Additional, newDef)
				return AddResult{Def: existing}
			}
		}
		return AddResult{Err: &DuplicateError{
			Name: name, PriorKind: existing.Kind,
			PriorLine: existing.Line, PriorColumn: existing.Column,
		}}
	}

	s.names[name] = newDef

	if outer := s.Query(name, BubbleUp); outer != nil && outer != newDef {
		severity := classifyShadow(s, outer, cfg)
		switch severity {
		case ShadowErrorForbiddenParam:
			delete(s.names, name)
			return AddResult{Err: &ForbiddenShadowError{
				Name: name, PriorLine: outer.Line, PriorColumn: outer.Column,
			}}
		case ShadowNone:
			return AddResult{Def: newDef}
		default:
			return AddResult{Def: newDef, Shadow: severity, ShadowOf: outer}
		}
	}

	return AddResult{Def: newDef}
}

// importStacksLegally reports whether adding an import with path can
// legally stack onto existing (which must itself be a DeclImport),
// i.e. every already-stacked path (existing plus its Additional list)
// has a distinct element path from the new one.
func importStacksLegally(existing *Def, path ImportPath) bool {
	if existing.ImportPath.equal(path) {
		return false
	}
	for _, extra := range existing.Additional {
		if extra.ImportPath.equal(path) {
			return false
		}
	}
	return true
}

// Remove erases name from s, used to roll back a failed late parsing
// step (spec.md §4.2).
func (s *Scope) Remove(name string) {
	delete(s.names, name)
}
