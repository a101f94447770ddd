package parser

import (
	"corelang/ast"
	"corelang/scope"
)

// Project is the compile-project interface the parser consumes
// (spec.md §1: "attribute-name interning" plus a "project-wide message
// sink" and warning configuration are the only semantic-pass
// collaborators the parser needs). Mirrors the teacher's pattern of
// taking its cross-cutting dependencies as a small interface rather
// than a concrete struct, so a later compiler stage can supply its own
// interner/sink without this package depending on it.
type Project interface {
	// InternAttributeName maps an attribute name to a stable id. When
	// create is false and name was never interned, ok is false.
	InternAttributeName(name string, create bool) (id int32, ok bool)

	// AddMessage appends one diagnostic to the project-wide sink, in
	// addition to the per-unit ast.Unit.Messages list the parser also
	// populates directly.
	AddMessage(msg ast.Message)

	// Warnings reports the shadow-warning configuration in effect.
	Warnings() scope.WarningConfig
}

// SimpleProject is a minimal Project used by tests and by callers that
// don't need cross-unit attribute interning.
type SimpleProject struct {
	names    map[string]int32
	Messages []ast.Message
	WarnCfg  scope.WarningConfig
}

func NewSimpleProject(cfg scope.WarningConfig) *SimpleProject {
	return &SimpleProject{names: make(map[string]int32), WarnCfg: cfg}
}

func (p *SimpleProject) InternAttributeName(name string, create bool) (int32, bool) {
	if id, ok := p.names[name]; ok {
		return id, true
	}
	if !create {
		return 0, false
	}
	id := int32(len(p.names))
	p.names[name] = id
	return id, true
}

func (p *SimpleProject) AddMessage(msg ast.Message) {
	p.Messages = append(p.Messages, msg)
}

func (p *SimpleProject) Warnings() scope.WarningConfig {
	return p.WarnCfg
}
