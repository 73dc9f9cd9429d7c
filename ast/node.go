// Package ast defines the restricted AST shape this compiler consumes:
// an ESTree-style tree (the shape mainstream JavaScript parsers emit),
// decoded from JSON by decode.go rather than produced by a parser this
// repository owns.
package ast

// Pos is a single source location matching Babel/ESTree's loc.start /
// loc.end convention: Line is 1-indexed, Column is 0-indexed.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Loc is a source span as reported by the external parser.
type Loc struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// CommentKind distinguishes `//` line comments from `/* */` block comments.
type CommentKind int

const (
	CommentLine CommentKind = iota
	CommentBlock
)

// Comment is a source comment attached to a node, used by the directive
// processor (package directive) to find `@js2f/...` annotations.
type Comment struct {
	Kind CommentKind
	Text string // comment body, not including the delimiters
	Loc  Loc
}

// Base carries the attributes every node has: its source range and the
// comments the parser attached to it. Node implementations embed Base.
type Base struct {
	Start           int
	End             int
	Loc             Loc
	LeadingComments []Comment
	TrailingComments []Comment
}

func (b *Base) Span() Loc               { return b.Loc }
func (b *Base) Leading() []Comment      { return b.LeadingComments }
func (b *Base) Trailing() []Comment     { return b.TrailingComments }

// Node is the common interface for every AST node this compiler visits.
type Node interface {
	// Span returns the node's source location, used to frame diagnostics.
	Span() Loc
	Leading() []Comment
	Trailing() []Comment
	astNode()
}

// Statement is a node that appears in a statement position and, per the
// generator's second invariant, leaves nothing on the stack once emitted.
type Statement interface {
	Node
	astStatement()
}

// Expression is a node that appears in an expression position and, per
// the generator's first invariant, leaves exactly one value on the stack
// once emitted.
type Expression interface {
	Node
	astExpression()
}

// Program is the root of a compiled unit: a flat list of top-level
// statements (ordinarily a single FunctionDeclaration plus supporting
// var declarations, but the generator does not require that shape).
type Program struct {
	Base
	Body []Statement
}

func (*Program) astNode() {}
