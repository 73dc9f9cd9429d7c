package codegen

import (
	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/emitctx"
)

// generateStatement dispatches on the statement's concrete type, running
// the directive processor over its comments before and after visiting
// it. Every statement must leave the stack exactly as it found it.
func (e *Emitter) generateStatement(s ast.Statement) error {
	if err := e.beforeNode(s); err != nil {
		return err
	}

	var err error
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		err = e.genExpressionStatement(n)
	case *ast.VariableDeclaration:
		err = e.genVariableDeclaration(n)
	case *ast.IfStatement:
		err = e.genIfStatement(n)
	case *ast.WhileStatement:
		err = e.genWhileStatement(n)
	case *ast.BreakStatement:
		err = e.genBreakStatement(n)
	case *ast.ReturnStatement:
		err = e.genReturnStatement(n)
	case *ast.BlockStatement:
		err = e.genBlockStatement(n)
	case *ast.FunctionDeclaration:
		err = e.genFunctionDeclaration(n)
	default:
		err = newError(KindUnimplementedNode, s, "no statement visitor for %T", s)
	}
	if err != nil {
		return err
	}

	return e.afterNode(s)
}

// genExpressionStatement marks its child as void-offered and emits a
// trailing pop unless the child acknowledged cleaning up its own stack
// effect.
func (e *Emitter) genExpressionStatement(n *ast.ExpressionStatement) error {
	ack, err := e.generateExpression(n.Expression, voidHint())
	if err != nil {
		return err
	}
	if !ack {
		e.emit(OpPop)
	}
	return nil
}

// genVariableDeclaration accepts only `var`.
func (e *Emitter) genVariableDeclaration(n *ast.VariableDeclaration) error {
	if n.Kind != "var" {
		return newError(KindUnimplementedFeature, n, "only 'var' declarations are supported, got %q", n.Kind)
	}
	for _, decl := range n.Declarations {
		if err := e.genVariableDeclarator(decl); err != nil {
			return err
		}
	}
	return nil
}

// genVariableDeclarator always declares a local register inside a
// function; outside a function an initializer is rejected
// (GlobalsUnsupported).
func (e *Emitter) genVariableDeclarator(d *ast.VariableDeclarator) error {
	fc, insideFn := e.currentFunction()
	if !insideFn {
		if d.Init != nil {
			return newError(KindGlobalsUnsupported, d, "global variable %q may not have an initializer", d.Name.Name)
		}
		return nil
	}

	reg, err := fc.DeclareVariable(d.Name.Name)
	if err != nil {
		return wrapAllocError(err, d)
	}

	if d.Init == nil {
		return nil
	}

	if _, err := e.generateExpression(d.Init, valueHint()); err != nil {
		return err
	}
	e.emit(OpSetRegister, reg.String())
	e.emit(OpPop)
	return nil
}

// genIfStatement emits a three-label shape: test, not, branchIfTrue
// <false>, true-label, consequent, branch <end>, false-label, alternate,
// end-label.
func (e *Emitter) genIfStatement(n *ast.IfStatement) error {
	trueLabel := e.newLabel("true")
	falseLabel := e.newLabel("false")
	endLabel := e.newLabel("end")

	if _, err := e.generateExpression(n.Test, valueHint()); err != nil {
		return err
	}
	e.emit(OpNot)
	e.emit(OpBranchIfTrue, falseLabel)
	e.emitLabel(trueLabel)
	if err := e.generateStatement(n.Consequent); err != nil {
		return err
	}
	e.emit(OpBranch, endLabel)
	e.emitLabel(falseLabel)
	if n.Alternate != nil {
		if err := e.generateStatement(n.Alternate); err != nil {
			return err
		}
	}
	e.emitLabel(endLabel)
	return nil
}

// genWhileStatement emits test/end labels and pushes a LoopContext whose
// EmitBreak jumps to the end label.
func (e *Emitter) genWhileStatement(n *ast.WhileStatement) error {
	testLabel := e.newLabel("test")
	endLabel := e.newLabel("end")

	loop := emitctx.NewLoopContext(endLabel, func(label string) {
		e.emit(OpBranch, label)
	})
	e.loops.Push(loop)
	defer e.loops.Pop()

	e.emitLabel(testLabel)
	if _, err := e.generateExpression(n.Test, valueHint()); err != nil {
		return err
	}
	e.emit(OpNot)
	e.emit(OpBranchIfTrue, endLabel)
	if err := e.generateStatement(n.Body); err != nil {
		return err
	}
	e.emit(OpBranch, testLabel)
	e.emitLabel(endLabel)
	return nil
}

// genBreakStatement rejects labeled breaks and requires an enclosing
// loop.
func (e *Emitter) genBreakStatement(n *ast.BreakStatement) error {
	if n.Label != nil {
		return newError(KindUnimplementedFeature, n, "labeled break is not supported")
	}
	loop, ok := e.currentLoop()
	if !ok {
		return newError(KindBreakOutsideLoop, n, "break outside of loop")
	}
	loop.EmitBreak()
	return nil
}

// genReturnStatement pushes UNDEF for a bare `return;`.
func (e *Emitter) genReturnStatement(n *ast.ReturnStatement) error {
	if n.Argument != nil {
		if _, err := e.generateExpression(n.Argument, valueHint()); err != nil {
			return err
		}
	} else {
		e.emit(OpPush, LitUndef)
	}
	e.emit(OpReturn)
	return nil
}

func (e *Emitter) genBlockStatement(n *ast.BlockStatement) error {
	for _, s := range n.Body {
		if err := e.generateStatement(s); err != nil {
			return err
		}
	}
	return nil
}
