// Package check validates a parsed configuration file: duplicate names,
// unknown or self-referential parents, and deletes of classes that were
// never declared.
package check

import (
	"fmt"
	"unicode/utf8"

	"rapcfg/internal/ast"
	"rapcfg/internal/report"
)

type Analyzer struct {
	diags []report.Diagnostic
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Check walks the file top to bottom and returns everything it found wrong.
// Declarations are visible only after their point of definition, so a class
// cannot inherit from one declared later in the same file.
func (a *Analyzer) Check(file *ast.File) []report.Diagnostic {
	a.diags = nil
	a.checkBody(file.Decls, NewScope(nil))
	return a.diags
}

func (a *Analyzer) checkBody(decls []ast.Decl, scope *Scope) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.Class:
			a.checkClass(d, scope)
		case *ast.Property:
			a.checkProperty(d, scope)
		case *ast.Delete:
			a.checkDelete(d, scope)
		}
	}
}

func (a *Analyzer) checkClass(c *ast.Class, scope *Scope) {
	name := c.Name.Value

	// Parent resolution happens before the class itself is defined, which
	// also rules out "class Foo : Foo".
	if c.Parent != nil {
		parent := c.Parent.Value
		if parent == name {
			a.errorAt(c.Parent.Pos, parent,
				fmt.Sprintf("class '%s' inherits from itself", name))
		} else if sym := scope.Lookup(parent); sym == nil {
			a.warnAt(c.Parent.Pos, parent,
				fmt.Sprintf("parent class '%s' is not defined in this file", parent))
		} else if sym.Kind != SymbolClass {
			a.errorAt(c.Parent.Pos, parent,
				fmt.Sprintf("'%s' is a property, not a class", parent))
		}
	}

	if existing := scope.LookupLocal(name); existing != nil {
		what := "class"
		if existing.Kind == SymbolProperty {
			what = "property"
		}
		a.errorAt(c.Name.Pos, name,
			fmt.Sprintf("'%s' is already defined as a %s at line %d",
				name, what, existing.Position.Line))
	} else {
		scope.Define(name, SymbolClass, c, c.Name.Pos)
	}

	if !c.External {
		a.checkBody(c.Body, NewScope(scope))
	}
}

func (a *Analyzer) checkProperty(p *ast.Property, scope *Scope) {
	name := p.Name.Value

	if existing := scope.LookupLocal(name); existing != nil {
		what := "property"
		if existing.Kind == SymbolClass {
			what = "class"
		}
		a.errorAt(p.Name.Pos, name,
			fmt.Sprintf("'%s' is already defined as a %s at line %d",
				name, what, existing.Position.Line))
		return
	}

	if p.Append {
		// "+=" extends an inherited array, so the name has to resolve
		// somewhere up the chain.
		if scope.parent == nil || scope.parent.Lookup(name) == nil {
			a.warnAt(p.Name.Pos, name,
				fmt.Sprintf("'%s +=' extends a property that is not defined in any enclosing class", name))
		}
	}

	scope.Define(name, SymbolProperty, nil, p.Name.Pos)
}

func (a *Analyzer) checkDelete(d *ast.Delete, scope *Scope) {
	name := d.Name.Value

	sym := scope.Lookup(name)
	if sym == nil {
		a.warnAt(d.Name.Pos, name,
			fmt.Sprintf("delete of undefined class '%s'", name))
		return
	}
	if sym.Kind != SymbolClass {
		a.errorAt(d.Name.Pos, name,
			fmt.Sprintf("cannot delete '%s': it is a property", name))
		return
	}

	// Retract a local definition so the name can be reused below.
	if scope.LookupLocal(name) != nil {
		scope.Remove(name)
	}
}

func (a *Analyzer) errorAt(pos ast.Position, lexeme, message string) {
	a.add(report.Error, pos, lexeme, message)
}

func (a *Analyzer) warnAt(pos ast.Position, lexeme, message string) {
	a.add(report.Warning, pos, lexeme, message)
}

func (a *Analyzer) add(sev report.Severity, pos ast.Position, lexeme, message string) {
	length := utf8.RuneCountInString(lexeme)
	if length < 1 {
		length = 1
	}
	a.diags = append(a.diags, report.Diagnostic{
		Severity: sev,
		Message:  message,
		Line:     pos.Line,
		Column:   pos.Column,
		Length:   length,
	})
}
