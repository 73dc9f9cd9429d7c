package codegen

import (
	"strconv"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// generateExpression dispatches on the expression's concrete type and
// returns whether the node already cleaned up its own stack effect
// ("ack"), used only by AssignmentExpression under a void hint. Every
// other expression leaves ack false: the caller either needs the single
// value (valueHint) or is the direct child of an ExpressionStatement and
// will pop it itself.
func (e *Emitter) generateExpression(expr ast.Expression, h hint) (bool, error) {
	if err := e.beforeNode(expr); err != nil {
		return false, err
	}

	var ack bool
	var err error
	switch n := expr.(type) {
	case *ast.NumericLiteral:
		err = e.genNumericLiteral(n)
	case *ast.BooleanLiteral:
		err = e.genBooleanLiteral(n)
	case *ast.StringLiteral:
		err = e.genStringLiteral(n)
	case *ast.NullLiteral:
		err = e.genNullLiteral(n)
	case *ast.BigIntLiteral:
		err = e.genBigIntLiteral(n)
	case *ast.RegExpLiteral:
		err = e.genRegExpLiteral(n)
	case *ast.Identifier:
		err = e.genIdentifier(n, h)
	case *ast.ThisExpression:
		err = e.genThisExpression(n)
	case *ast.TemplateLiteral:
		err = e.genTemplateLiteral(n)
	case *ast.MemberExpression:
		err = e.genMemberExpression(n, h)
	case *ast.ArrayExpression:
		err = e.genArrayExpression(n)
	case *ast.NewExpression:
		err = e.genNewExpression(n)
	case *ast.CallExpression:
		err = e.genCallExpression(n)
	case *ast.BinaryExpression:
		err = e.genBinaryExpression(n)
	case *ast.UnaryExpression:
		err = e.genUnaryExpression(n)
	case *ast.UpdateExpression:
		err = e.genUpdateExpression(n)
	case *ast.AssignmentExpression:
		ack, err = e.genAssignmentExpression(n, h)
	case *ast.FunctionDeclaration:
		// An anonymous FunctionExpression used as a value: the VM's own
		// semantics leave the created function on the stack when the header
		// carries no name, so no extra push is emitted here.
		err = e.genFunctionDeclaration(n)
	default:
		err = newError(KindUnimplementedNode, expr, "no expression visitor for %T", expr)
	}
	if err != nil {
		return false, err
	}

	if err := e.afterNode(expr); err != nil {
		return false, err
	}
	return ack, nil
}

// isPushableLiteral reports whether expr compiles to exactly one `push`
// with no side effects.
func isPushableLiteral(expr ast.Expression) bool {
	switch n := expr.(type) {
	case *ast.NumericLiteral, *ast.BooleanLiteral, *ast.StringLiteral,
		*ast.NullLiteral, *ast.BigIntLiteral, *ast.RegExpLiteral:
		return true
	case *ast.Identifier:
		return n.Name == "undefined"
	default:
		return false
	}
}

// genMemberExpression pushes the object, then the property, concluding
// with getMember unless h.skipGet is set.
func (e *Emitter) genMemberExpression(n *ast.MemberExpression, h hint) error {
	if _, err := e.generateExpression(n.Object, valueHint()); err != nil {
		return err
	}

	if n.Computed {
		if _, err := e.generateExpression(n.Property, valueHint()); err != nil {
			return err
		}
	} else {
		prop, ok := n.Property.(*ast.Identifier)
		if !ok {
			return newError(KindUnimplementedFeature, n, "member property must be an Identifier")
		}
		e.emit(OpPush, escapeString(prop.Name))
	}

	if !h.skipGet {
		e.emit(OpGetMember)
	}
	return nil
}

// genArrayExpression pushes elements in reverse order, then the length,
// then initArray.
func (e *Emitter) genArrayExpression(n *ast.ArrayExpression) error {
	for i := len(n.Elements) - 1; i >= 0; i-- {
		if _, err := e.generateExpression(n.Elements[i], valueHint()); err != nil {
			return err
		}
	}
	e.emit(OpPush, strconv.Itoa(len(n.Elements)))
	e.emit(OpInitArray)
	return nil
}

// genNewExpression pushes arguments in reverse order, then argc, then the
// class name, then new. Callee must be an Identifier.
func (e *Emitter) genNewExpression(n *ast.NewExpression) error {
	callee, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return newError(KindUnimplementedFeature, n, "new callee must be an Identifier")
	}
	for i := len(n.Arguments) - 1; i >= 0; i-- {
		if _, err := e.generateExpression(n.Arguments[i], valueHint()); err != nil {
			return err
		}
	}
	e.emit(OpPush, strconv.Itoa(len(n.Arguments)))
	e.emit(OpPush, escapeString(callee.Name))
	e.emit(OpNew)
	return nil
}

// genCallExpression special-cases trace(...) and int(x), otherwise pushes
// arguments in reverse order, argc, then the callee with its get
// suppressed, concluding with callFunction or callMethod.
func (e *Emitter) genCallExpression(n *ast.CallExpression) error {
	if ident, ok := n.Callee.(*ast.Identifier); ok {
		switch ident.Name {
		case "trace":
			return newError(KindUnsupportedIntrinsic, n, "trace() is not supported")
		case "int":
			if len(n.Arguments) != 1 {
				return newError(KindWrongArity, n, "int() expects exactly 1 argument, got %d", len(n.Arguments))
			}
			if _, err := e.generateExpression(n.Arguments[0], valueHint()); err != nil {
				return err
			}
			e.emit(OpInt)
			return nil
		}
	}

	var calleeOpcode string
	switch n.Callee.(type) {
	case *ast.Identifier:
		calleeOpcode = OpCallFunction
	case *ast.MemberExpression:
		calleeOpcode = OpCallMethod
	default:
		return newError(KindUnimplementedFeature, n, "call callee must be an Identifier or MemberExpression")
	}

	for i := len(n.Arguments) - 1; i >= 0; i-- {
		if _, err := e.generateExpression(n.Arguments[i], valueHint()); err != nil {
			return err
		}
	}
	e.emit(OpPush, strconv.Itoa(len(n.Arguments)))
	if _, err := e.generateExpression(n.Callee, valueHint().withSkipGet()); err != nil {
		return err
	}
	e.emit(calleeOpcode)
	return nil
}

// binaryOpcodes maps each supported binary operator to its opcode,
// including a bitwise AND/OR transposition carried over from the
// reference assembly (preserved here, see DESIGN.md's Open Question
// decisions).
var binaryOpcodes = map[ast.BinaryOperator]string{
	ast.OpEq:         OpEquals,
	ast.OpStrictEq:   OpStrictEquals,
	ast.OpLess:       OpLessThan,
	ast.OpGreater:    OpGreaterThan,
	ast.OpShl:        OpShiftLeft,
	ast.OpShr:        OpShiftRight,
	ast.OpShrUnsigned: OpShiftRight2,
	ast.OpAdd:        OpAdd,
	ast.OpSub:        OpSubtract,
	ast.OpMul:        OpMultiply,
	ast.OpDiv:        OpDivide,
	ast.OpMod:        OpModulo,
	ast.OpBitOr:      OpBitwiseAnd,
	ast.OpBitXor:     OpBitwiseXor,
	ast.OpBitAnd:     OpBitwiseOr,
	ast.OpInstanceOf: OpInstanceOf,
}

// negatedBinaryOpcodes are operators that derive from a direct table
// entry followed by `not`.
var negatedBinaryOpcodes = map[ast.BinaryOperator]string{
	ast.OpNotEq:     OpEquals,
	ast.OpStrictNeq: OpStrictEquals,
	ast.OpLessEq:    OpGreaterThan,
	ast.OpGreaterEq: OpLessThan,
}

func (e *Emitter) genBinaryExpression(n *ast.BinaryExpression) error {
	if _, err := e.generateExpression(n.Left, valueHint()); err != nil {
		return err
	}
	if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
		return err
	}

	if op, ok := binaryOpcodes[n.Operator]; ok {
		e.emit(op)
		return nil
	}
	if op, ok := negatedBinaryOpcodes[n.Operator]; ok {
		e.emit(op)
		e.emit(OpNot)
		return nil
	}
	return newError(KindUnsupportedOperator, n, "unsupported binary operator %q", n.Operator)
}

// genUnaryExpression supports only prefix "!".
func (e *Emitter) genUnaryExpression(n *ast.UnaryExpression) error {
	if n.Operator != "!" || !n.Prefix {
		return newError(KindUnimplementedFeature, n, "unary operator %q is unsupported", n.Operator)
	}
	if _, err := e.generateExpression(n.Argument, valueHint()); err != nil {
		return err
	}
	e.emit(OpNot)
	return nil
}

// genUpdateExpression supports only postfix ++/-- on an Identifier
// argument. For a register variable the sequence leaves the post-update
// value on the stack (setRegister does not consume it), not the
// pre-update value. For a global the trailing setVariable consumes both
// the name and the updated value, so nothing is left on the stack. See
// DESIGN.md's Open Question decisions.
func (e *Emitter) genUpdateExpression(n *ast.UpdateExpression) error {
	if n.Prefix {
		return newError(KindUnimplementedFeature, n, "prefix update is unsupported")
	}
	ident, ok := n.Argument.(*ast.Identifier)
	if !ok {
		return newError(KindUnimplementedFeature, n, "update expression argument must be an Identifier")
	}

	var opcode string
	switch n.Operator {
	case "++":
		opcode = OpIncrement
	case "--":
		opcode = OpDecrement
	default:
		return newError(KindUnsupportedOperator, n, "unsupported update operator %q", n.Operator)
	}

	if rv, ok := e.currentRegisterVariables(); ok {
		if reg, found := rv.GetVariableRegister(ident.Name); found {
			e.emit(OpPush, reg.String())
			e.emit(opcode)
			e.emit(OpSetRegister, reg.String())
			return nil
		}
	}

	e.emit(OpPush, escapeString(ident.Name))
	e.emit(OpPush, escapeString(ident.Name))
	e.emit(OpGetVariable)
	e.emit(opcode)
	e.emit(OpSetVariable)
	return nil
}

// genAssignmentTarget evaluates an assignment's left-hand side with the
// skip-get hint asserted, so member emission stops after object+property
// and identifier emission stops after pushing the name.
func (e *Emitter) genAssignmentTarget(left ast.Expression) error {
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		_, err := e.generateExpression(left, valueHint().withSkipGet())
		return err
	default:
		return newError(KindUnimplementedFeature, left, "assignment target must be an Identifier or MemberExpression")
	}
}

// genAssignmentExpression implements the five-case analysis for
// AssignmentExpression, with each case marked inline below. Only "=" is
// supported.
//
// The void-offered member case (case 2) is the only one that gets an
// ack-free statement form; a void-offered identifier target falls
// through to the plain target/right/assign shape and relies on
// ExpressionStatement's own trailing pop. The caller/root
// value-preservation machinery (cases 3-5) is reserved for contexts that
// actually consume the assignment's result; see DESIGN.md.
func (e *Emitter) genAssignmentExpression(n *ast.AssignmentExpression, h hint) (bool, error) {
	if n.Operator != "=" {
		return false, newError(KindUnimplementedFeature, n, "only '=' assignment is supported, got %q", n.Operator)
	}
	switch n.Left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		return false, newError(KindUnimplementedFeature, n, "assignment target must be an Identifier or MemberExpression")
	}

	voidOffered := h.mode == modeVoid
	_, isMember := n.Left.(*ast.MemberExpression)

	// Case 1: L resolves to a register.
	if ident, ok := n.Left.(*ast.Identifier); ok {
		if rv, ok := e.currentRegisterVariables(); ok {
			if reg, found := rv.GetVariableRegister(ident.Name); found {
				if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
					return false, err
				}
				e.emit(OpSetRegister, reg.String())
				if voidOffered {
					e.emit(OpPop)
					return true, nil
				}
				return false, nil
			}
		}
	}

	assignOpcode := OpSetVariable
	if isMember {
		assignOpcode = OpSetMember
	}

	// Case 2: void offered, member target -- callee cleanup.
	if voidOffered && isMember {
		if err := e.genAssignmentTarget(n.Left); err != nil {
			return false, err
		}
		if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
			return false, err
		}
		e.emit(assignOpcode)
		return true, nil
	}

	// Void offered, non-member target: nothing downstream consumes the
	// result, so skip straight to the plain shape; ExpressionStatement's
	// own pop balances the stack.
	if voidOffered {
		if err := e.genAssignmentTarget(n.Left); err != nil {
			return false, err
		}
		if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
			return false, err
		}
		e.emit(assignOpcode)
		return false, nil
	}

	// Case 3: R is a pushable literal -- idempotent under re-evaluation.
	if isPushableLiteral(n.Right) {
		if err := e.genAssignmentTarget(n.Left); err != nil {
			return false, err
		}
		if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
			return false, err
		}
		e.emit(assignOpcode)
		if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
			return false, err
		}
		return false, nil
	}

	// Case 4: inside a function -- caller cleanup via a temporary register.
	if fc, insideFn := e.currentFunction(); insideFn {
		if err := e.genAssignmentTarget(n.Left); err != nil {
			return false, err
		}
		if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
			return false, err
		}
		temp, err := fc.AllocTemporaryRegister()
		if err != nil {
			return false, wrapAllocError(err, n)
		}
		e.emit(OpSetRegister, temp.String())
		e.emit(assignOpcode)
		e.emit(OpPush, temp.String())
		fc.FreeTemporaryRegister(temp)
		return false, nil
	}

	// Case 5: at the root -- borrow r:1 around the assignment. `push r:1`
	// saves r:1's current value on the stack beneath the target; the first
	// setRegister copies the right-hand value into r:1 before the
	// assignment consumes target and value; the second setRegister writes
	// the stack top (the saved value) back into r:1. The value left on the
	// stack is the one r:1 held before the sequence.
	borrow := register.Register{Id: 1}
	e.emit(OpPush, borrow.String())
	if err := e.genAssignmentTarget(n.Left); err != nil {
		return false, err
	}
	if _, err := e.generateExpression(n.Right, valueHint()); err != nil {
		return false, err
	}
	e.emit(OpSetRegister, borrow.String())
	e.emit(assignOpcode)
	e.emit(OpSetRegister, borrow.String())
	return false, nil
}
