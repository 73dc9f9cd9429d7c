package codegen

import (
	"strconv"
	"strings"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
)

// escapeString renders a string literal wrapped in single quotes,
// escaping exactly \b \f \n \r \t. Quotes and backslashes are written
// through unescaped.
func escapeString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func formatNumber(n *ast.NumericLiteral) string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (e *Emitter) genNumericLiteral(n *ast.NumericLiteral) error {
	e.emit(OpPush, formatNumber(n))
	return nil
}

func (e *Emitter) genBooleanLiteral(n *ast.BooleanLiteral) error {
	lit := LitFalse
	if n.Value {
		lit = LitTrue
	}
	e.emit(OpPush, lit)
	return nil
}

func (e *Emitter) genStringLiteral(n *ast.StringLiteral) error {
	e.emit(OpPush, escapeString(n.Value))
	return nil
}

func (e *Emitter) genNullLiteral(n *ast.NullLiteral) error {
	e.emit(OpPush, "null")
	return nil
}

func (e *Emitter) genBigIntLiteral(n *ast.BigIntLiteral) error {
	e.emit(OpPush, n.Raw)
	return nil
}

func (e *Emitter) genRegExpLiteral(n *ast.RegExpLiteral) error {
	e.emit(OpPush, "/"+n.Pattern+"/"+n.Flags)
	return nil
}

// genIdentifier resolves a non-literal identifier against the innermost
// RegisterVariablesContext; failing that it falls back to a global
// variable lookup by name. skipGet suppresses
// the trailing getVariable the way an assignment target or a call callee
// requires.
func (e *Emitter) genIdentifier(n *ast.Identifier, h hint) error {
	if n.Name == "undefined" {
		e.emit(OpPush, LitUndef)
		return nil
	}

	if rv, ok := e.currentRegisterVariables(); ok {
		if reg, found := rv.GetVariableRegister(n.Name); found {
			e.emit(OpPush, reg.String())
			return nil
		}
	}

	e.emit(OpPush, escapeString(n.Name))
	if !h.skipGet {
		e.emit(OpGetVariable)
	}
	return nil
}

// genThisExpression resolves "this" in the innermost register-variables
// context.
func (e *Emitter) genThisExpression(n *ast.ThisExpression) error {
	_, insideFn := e.currentFunction()

	rv, ok := e.currentRegisterVariables()
	if ok {
		if reg, found := rv.GetVariableRegister("this"); found {
			e.emit(OpPush, reg.String())
			return nil
		}
	}

	if insideFn {
		return newError(KindInternalError, n, "function context present but 'this' was not registered")
	}
	return newError(KindThisOutsideFunction, n, "'this' used outside of a function")
}

// genTemplateLiteral implements a string-concatenation accumulator: push
// '', then for each chunk push the chunk, fold in its matching
// interpolated expression with add, then add into the accumulator, left
// to right.
func (e *Emitter) genTemplateLiteral(n *ast.TemplateLiteral) error {
	e.emit(OpPush, escapeString(""))
	for i, chunk := range n.Quasis {
		e.emit(OpPush, escapeString(chunk))
		if i < len(n.Expressions) {
			if _, err := e.generateExpression(n.Expressions[i], valueHint()); err != nil {
				return err
			}
			e.emit(OpAdd)
		}
		e.emit(OpAdd)
	}
	return nil
}
