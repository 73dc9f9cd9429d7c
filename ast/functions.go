package ast

// FunctionDeclaration is `function name(params) { body }`. A
// FunctionExpression is represented as a FunctionDeclaration with a nil
// Name — decode.go performs that rewrite so the generator only ever has
// one function node shape to visit.
type FunctionDeclaration struct {
	Base
	Name   *Identifier // nil for an anonymous function expression
	Params []*Identifier
	Body   *BlockStatement
}

func (*FunctionDeclaration) astNode()      {}
func (*FunctionDeclaration) astStatement() {}
func (*FunctionDeclaration) astExpression() {}
