package ast

// ExpressionStatement wraps an expression evaluated for its side effects;
// the generator discards its value.
type ExpressionStatement struct {
	Base
	Expression Expression
}

func (*ExpressionStatement) astNode()      {}
func (*ExpressionStatement) astStatement() {}

// BlockStatement is a `{ ... }` sequence of statements. It does not
// introduce its own scope in this language's generator — only
// FunctionDeclaration/FunctionExpression do.
type BlockStatement struct {
	Base
	Body []Statement
}

func (*BlockStatement) astNode()      {}
func (*BlockStatement) astStatement() {}

// VariableDeclarator is one `name[ = init]` clause of a VariableDeclaration.
type VariableDeclarator struct {
	Base
	Name *Identifier
	Init Expression // nil if no initializer
}

func (*VariableDeclarator) astNode() {}

// VariableDeclaration is `var a = 1, b;`. Only Kind == "var" is supported.
type VariableDeclaration struct {
	Base
	Kind         string // must be "var"
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) astNode()      {}
func (*VariableDeclaration) astStatement() {}

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Base
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else clause
}

func (*IfStatement) astNode()      {}
func (*IfStatement) astStatement() {}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Base
	Test Expression
	Body Statement
}

func (*WhileStatement) astNode()      {}
func (*WhileStatement) astStatement() {}

// BreakStatement is `break;`. A labeled break (`break label;`) is
// unsupported and is rejected by the generator, not here.
type BreakStatement struct {
	Base
	Label *Identifier // non-nil only for a labeled break, which the generator rejects
}

func (*BreakStatement) astNode()      {}
func (*BreakStatement) astStatement() {}

// ReturnStatement is `return [argument];`.
type ReturnStatement struct {
	Base
	Argument Expression // nil for a bare `return;`
}

func (*ReturnStatement) astNode()      {}
func (*ReturnStatement) astStatement() {}
