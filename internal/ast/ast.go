package ast

// Position locates a node in its source file.
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based
	Column   int // 1-based
}

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	String() string
}

// Decl is a declaration inside a class body or at file scope: a nested class,
// a property assignment, or a delete statement.
type Decl interface {
	Node
	declNode()
}

// Value is the right-hand side of a property: a literal or a nested array.
type Value interface {
	Node
	valueNode()
}

// File is a parsed configuration file. Directives are collected out of band
// in source order; the scanner never surfaces them through lookahead.
type File struct {
	Path       string
	Decls      []Decl
	Directives []*Directive
}

// Ident is a name occurrence.
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// Class is a class definition. An external declaration ("class Foo;") has
// External set and no body; an empty body ("class Foo {};") does not.
type Class struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Parent   *Ident // nil when the class does not inherit
	Body     []Decl
	External bool
}

// Delete removes an inherited class ("delete Foo;"). The delete word is a
// soft keyword recognized contextually.
type Delete struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// Property is a scalar assignment ("name = v;") or an array assignment
// ("name[] = {...};" / "name[] += {...};").
type Property struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	IsArray bool
	Append  bool // "+=", only meaningful for arrays
	Value   Value
}

// Directive is a preprocessor line such as #include or #define, retained
// verbatim.
type Directive struct {
	Pos    Position
	EndPos Position
	Text   string
}

// StringLit keeps both the raw source form (with quotes and escapes) and the
// decoded value.
type StringLit struct {
	Pos    Position
	EndPos Position
	Raw    string
	Value  string
}

// NumberLit is a decimal or hexadecimal literal; Raw preserves the exact
// source spelling.
type NumberLit struct {
	Pos    Position
	EndPos Position
	Raw    string
	IsHex  bool
	Neg    bool
}

type BoolLit struct {
	Pos    Position
	EndPos Position
	Value  bool
}

// IdentValue is a bare identifier in value position, typically a macro name
// left for the preprocessor.
type IdentValue struct {
	Pos    Position
	EndPos Position
	Value  string
}

type Array struct {
	Pos    Position
	EndPos Position
	Elems  []Value
}

func (c *Class) NodePos() Position    { return c.Pos }
func (c *Class) NodeEndPos() Position { return c.EndPos }
func (*Class) declNode()              {}

func (d *Delete) NodePos() Position    { return d.Pos }
func (d *Delete) NodeEndPos() Position { return d.EndPos }
func (*Delete) declNode()              {}

func (p *Property) NodePos() Position    { return p.Pos }
func (p *Property) NodeEndPos() Position { return p.EndPos }
func (*Property) declNode()              {}

func (d *Directive) NodePos() Position    { return d.Pos }
func (d *Directive) NodeEndPos() Position { return d.EndPos }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }

func (s *StringLit) NodePos() Position    { return s.Pos }
func (s *StringLit) NodeEndPos() Position { return s.EndPos }
func (*StringLit) valueNode()             {}

func (n *NumberLit) NodePos() Position    { return n.Pos }
func (n *NumberLit) NodeEndPos() Position { return n.EndPos }
func (*NumberLit) valueNode()             {}

func (b *BoolLit) NodePos() Position    { return b.Pos }
func (b *BoolLit) NodeEndPos() Position { return b.EndPos }
func (*BoolLit) valueNode()             {}

func (iv *IdentValue) NodePos() Position    { return iv.Pos }
func (iv *IdentValue) NodeEndPos() Position { return iv.EndPos }
func (*IdentValue) valueNode()              {}

func (a *Array) NodePos() Position    { return a.Pos }
func (a *Array) NodeEndPos() Position { return a.EndPos }
func (*Array) valueNode()             {}
