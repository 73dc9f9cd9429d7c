// Package codegen is the AST-directed code generator, emitting textual
// AS2 VM assembly from the restricted AST in package ast: one switch
// case per AST node variant, consulting a register allocator and a
// stack of contexts as it walks the tree.
package codegen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/directive"
	"github.com/cxcorp/js-to-flasm-as2-compiler/emitctx"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// Emitter holds the generator's mutable state for one compiled unit: the
// accumulated instruction lines, the current indent depth, and the three
// context stacks (function, register-variable, and loop scope) that
// parameterize code generation over nesting.
type Emitter struct {
	lines []string
	depth int

	functions emitctx.Stack[*emitctx.FunctionContext]
	regVars   emitctx.Stack[*emitctx.RegisterVariablesContext]
	loops     emitctx.Stack[*emitctx.LoopContext]

	directives *directive.Processor

	labelSeq int

	log *logrus.Entry
}

// New returns an Emitter ready to generate a Program. log may be nil;
// every logging call is nil-safe so library callers who don't want
// logging aren't forced into it.
func New(log *logrus.Entry) *Emitter {
	e := &Emitter{log: log}
	e.directives = directive.NewProcessor(&e.regVars)
	return e
}

// Lines returns the accumulated, not-yet-coalesced instruction lines, in
// emission order. Callers typically run this through package optimize
// and then package simulate before treating it as final output.
func (e *Emitter) Lines() []string {
	return e.lines
}

// PushRegisterVariables installs an explicit name-to-register binding set,
// the same shape a `@js2f/push-register-context:` directive installs, so
// a caller can predeclare register-variable bindings before
// GenerateProgram runs. Pair with PopRegisterVariables once compilation
// finishes.
func (e *Emitter) PushRegisterVariables(bindings map[string]register.Register) {
	e.regVars.Push(emitctx.NewExplicitRegisterVariablesContext(bindings))
}

// PopRegisterVariables removes the most recently pushed register-variables
// context. No-op if the stack is empty.
func (e *Emitter) PopRegisterVariables() {
	e.regVars.Pop()
}

// GenerateProgram walks every top-level statement.
func (e *Emitter) GenerateProgram(prog *ast.Program) error {
	for _, stmt := range prog.Body {
		if err := e.generateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) logf(level logrus.Level, format string, args ...interface{}) {
	if e.log == nil {
		return
	}
	e.log.Logf(level, format, args...)
}

// emit appends one opcode instruction at the current indent depth.
func (e *Emitter) emit(opcode string, operands ...string) {
	e.lines = append(e.lines, formatInstruction(e.depth, opcode, operands))
}

// emitLabel appends a label line, one indent level less than the
// surrounding code.
func (e *Emitter) emitLabel(label string) {
	e.lines = append(e.lines, formatLabel(e.depth, label))
}

// emitRaw appends a line verbatim (function headers, `end`, echoed
// source comments) without additional opcode formatting, but still at
// the current indent depth.
func (e *Emitter) emitRaw(line string) {
	e.lines = append(e.lines, indentPrefix(e.depth)+line)
}

// indent increases the structural nesting depth.
func (e *Emitter) indent() {
	e.depth++
}

// deindent decreases nesting depth, clamping at zero with a warning
// rather than going negative.
func (e *Emitter) deindent() {
	if e.depth == 0 {
		e.logf(logrus.WarnLevel, "indent underflow clamped to 0")
		return
	}
	e.depth--
}

// newLabel returns a fresh, unique label name tagged for readability.
func (e *Emitter) newLabel(tag string) string {
	e.labelSeq++
	return fmt.Sprintf("L%d_%s", e.labelSeq, tag)
}

func (e *Emitter) insideFunction() bool {
	_, ok := e.functions.Peek()
	return ok
}

func (e *Emitter) currentFunction() (*emitctx.FunctionContext, bool) {
	return e.functions.Peek()
}

func (e *Emitter) currentRegisterVariables() (*emitctx.RegisterVariablesContext, bool) {
	return e.regVars.Peek()
}

func (e *Emitter) currentLoop() (*emitctx.LoopContext, bool) {
	return e.loops.Peek()
}

// beforeNode / afterNode run the directive processor over a node's
// leading/trailing comments, before and after the node itself is visited.
func (e *Emitter) beforeNode(n ast.Node) error {
	return e.directives.Process(n.Leading(), e.insideFunction())
}

func (e *Emitter) afterNode(n ast.Node) error {
	return e.directives.Process(n.Trailing(), e.insideFunction())
}
