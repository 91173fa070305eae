package ast

import (
	"fmt"
	"strings"
)

func (f *File) String() string {
	var b strings.Builder
	for _, d := range f.Directives {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	for _, d := range f.Decls {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Class) String() string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(c.Name.Value)
	if c.Parent != nil {
		b.WriteString(" : ")
		b.WriteString(c.Parent.Value)
	}
	if c.External {
		b.WriteString(";")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, d := range c.Body {
		b.WriteString("  " + strings.ReplaceAll(d.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("};")
	return b.String()
}

func (d *Delete) String() string {
	return fmt.Sprintf("delete %s;", d.Name.Value)
}

func (p *Property) String() string {
	if p.IsArray {
		op := "="
		if p.Append {
			op = "+="
		}
		return fmt.Sprintf("%s[] %s %s;", p.Name.Value, op, p.Value.String())
	}
	return fmt.Sprintf("%s = %s;", p.Name.Value, p.Value.String())
}

func (d *Directive) String() string {
	return d.Text
}

func (i *Ident) String() string {
	return i.Value
}

func (s *StringLit) String() string {
	return s.Raw
}

func (n *NumberLit) String() string {
	if n.Neg {
		return "-" + n.Raw
	}
	return n.Raw
}

func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (iv *IdentValue) String() string {
	return iv.Value
}

func (a *Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
