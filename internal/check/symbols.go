package check

import (
	"rapcfg/internal/ast"
)

type SymbolKind int

const (
	SymbolClass SymbolKind = iota
	SymbolProperty
)

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Class    *ast.Class // set for SymbolClass
	Position ast.Position
}

// Scope tracks the names declared in one class body. Lookups fall through to
// the enclosing bodies, matching how inherited members resolve.
type Scope struct {
	symbols map[string]*Symbol
	parent  *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (s *Scope) Define(name string, kind SymbolKind, class *ast.Class, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Class:    class,
		Position: pos,
	}
	s.symbols[name] = symbol
	return symbol
}

func (s *Scope) Lookup(name string) *Symbol {
	if symbol, exists := s.symbols[name]; exists {
		return symbol
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil
}

// LookupLocal ignores enclosing scopes. Shadowing an outer name is fine;
// only same-body duplicates are conflicts.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// Remove drops a local definition, used when a delete statement retracts a
// class so the name can be declared again afterwards.
func (s *Scope) Remove(name string) {
	delete(s.symbols, name)
}
