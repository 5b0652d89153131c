// Package symtab implements Rue's symbol table: scopes, name binding, and
// the declaration-then-resolution scheme of spec.md §4.4. It generalizes
// the teacher's single flat Environment (interpreter/environment.go,
// name -> value with outward lookup) into a stack of scopes mapping
// name -> *Symbol, plus a declaration pre-pass for forward references.
package symtab

import (
	"fmt"

	"rue/internal/util"
	"rue/types"
)

type SymbolKind int

const (
	SymFunc SymbolKind = iota
	SymStruct
	SymEnum
	SymEnumVariant
	SymParam
	SymLocal
)

// Symbol is a named entity: function, struct, enum, enum-variant,
// parameter, or local binding (spec.md §3).
type Symbol struct {
	ID      int
	Name    string
	Kind    SymbolKind
	Type    *types.Type
	ScopeID int
}

type scope struct {
	id    int
	names map[string]*Symbol
}

// Overlay is the flow-sensitive narrowing context (spec.md §4.5, §9):
// an immutable chain of symbol-id -> narrowed-type entries, pushed when
// entering a narrowed branch and discarded on exit, never mutating the
// symbol's own stored type.
type Overlay struct {
	parent   *Overlay
	narrowed map[int]*types.Type
}

// Table owns the scope stack and the narrowing overlay stack.
type Table struct {
	scopes      util.Stack[*scope]
	overlay     *Overlay
	nextSymID   int
	nextScopeID int
}

func New() *Table {
	t := &Table{}
	t.PushScope()
	return t
}

func (t *Table) PushScope() {
	s := &scope{id: t.nextScopeID, names: map[string]*Symbol{}}
	t.nextScopeID++
	t.scopes.Push(s)
}

func (t *Table) PopScope() {
	t.scopes.Pop()
}

// Declare registers name in the current scope. It returns (symbol, false)
// without modifying the table when name already exists in this exact
// scope (spec.md §4.4: "Duplicate names within one scope are an error" —
// the caller is responsible for turning that into a diag.NameError).
func (t *Table) Declare(name string, kind SymbolKind, typ *types.Type) (*Symbol, bool) {
	top, ok := t.scopes.Peek()
	if !ok {
		panic("symtab: Declare called with no open scope")
	}
	if existing, dup := top.names[name]; dup {
		return existing, false
	}
	sym := &Symbol{ID: t.nextSymID, Name: name, Kind: kind, Type: typ, ScopeID: top.id}
	t.nextSymID++
	top.names[name] = sym
	return sym, true
}

// Resolve walks scopes outward from the innermost to find name.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// PushOverlay enters a new narrowing context layered on top of the
// current one.
func (t *Table) PushOverlay() {
	t.overlay = &Overlay{parent: t.overlay, narrowed: map[int]*types.Type{}}
}

// PopOverlay discards the innermost narrowing context.
func (t *Table) PopOverlay() {
	if t.overlay != nil {
		t.overlay = t.overlay.parent
	}
}

// Narrow records that sym's static type is ty within the current overlay.
func (t *Table) Narrow(sym *Symbol, ty *types.Type) {
	if t.overlay == nil {
		t.PushOverlay()
	}
	t.overlay.narrowed[sym.ID] = ty
}

// TypeOf returns sym's narrowed type if any overlay narrows it, otherwise
// its declared type.
func (t *Table) TypeOf(sym *Symbol) *types.Type {
	for o := t.overlay; o != nil; o = o.parent {
		if ty, ok := o.narrowed[sym.ID]; ok {
			return ty
		}
	}
	return sym.Type
}

func (k SymbolKind) String() string {
	switch k {
	case SymFunc:
		return "function"
	case SymStruct:
		return "struct"
	case SymEnum:
		return "enum"
	case SymEnumVariant:
		return "enum variant"
	case SymParam:
		return "parameter"
	case SymLocal:
		return "local"
	default:
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
}
