package ast

import (
	"reflect"
	"testing"

	"corelang/arena"
)

func TestChildrenSkipsNilEntries(t *testing.T) {
	n := &Node{Data: Binary{Left: 3, Right: arena.Nil}}
	got := Children(n)
	want := []arena.ID{3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children(Binary{Left:3,Right:Nil}) = %v, want %v", got, want)
	}
}

func TestChildrenLeafHasNone(t *testing.T) {
	n := &Node{Data: Identifier{Name: "x"}}
	if got := Children(n); len(got) != 0 {
		t.Errorf("Children(Identifier) = %v, want none", got)
	}
}

func TestChildrenCallIncludesCalleeAndArgValues(t *testing.T) {
	n := &Node{Data: Call{
		Callee: 1,
		Args:   []CallArg{{Name: "", Value: 2}, {Name: "k", Value: 3}},
	}}
	got := Children(n)
	want := []arena.ID{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children(Call) = %v, want %v", got, want)
	}
}

func TestChildrenDoIncludesRescuesAndFinally(t *testing.T) {
	n := &Node{Data: Do{
		Body:    []arena.ID{1},
		Rescues: []Rescue{{Types: []arena.ID{2, 3}, Body: []arena.ID{4}}},
		Finally: []arena.ID{5},
	}}
	got := Children(n)
	want := []arena.ID{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children(Do) = %v, want %v", got, want)
	}
}

func TestIsLValue(t *testing.T) {
	nodes := map[arena.ID]*Node{
		0: {Data: Identifier{Name: "x"}},
		1: {Data: Literal{Value: int64(1)}},
		2: {Data: Attribute{Object: 0, Name: "y"}},
		3: {Data: Attribute{Object: 1, Name: "y"}},
	}
	get := func(id arena.ID) *Node { return nodes[id] }

	if !IsLValue(get, 0) {
		t.Errorf("IsLValue(identifier) = false, want true")
	}
	if !IsLValue(get, 2) {
		t.Errorf("IsLValue(attribute of identifier) = false, want true")
	}
	if IsLValue(get, 3) {
		t.Errorf("IsLValue(attribute of literal) = true, want false")
	}
	if IsLValue(get, arena.Nil) {
		t.Errorf("IsLValue(Nil) = true, want false")
	}
}
