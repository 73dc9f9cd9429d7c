package codegen

import (
	"strings"
	"testing"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// These tests pin literal end-to-end instruction sequences for whole
// programs, built directly as AST values (no parser in this package's
// scope).

func numLit(v float64, raw string) *ast.NumericLiteral {
	return &ast.NumericLiteral{Value: v, Raw: raw}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// TestGlobalChainedAssignment covers a root-level chained assignment:
// `a = b = 123;`.
func TestGlobalChainedAssignment(t *testing.T) {
	prog := &ast.Program{
		Body: []ast.Statement{
			&ast.ExpressionStatement{
				Expression: &ast.AssignmentExpression{
					Operator: "=",
					Left:     ident("a"),
					Right: &ast.AssignmentExpression{
						Operator: "=",
						Left:     ident("b"),
						Right:    numLit(123, "123"),
					},
				},
			},
		},
	}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	want := []string{
		"push 'a'",
		"push 'b'",
		"push 123",
		"setVariable",
		"push 123",
		"setVariable",
		"pop",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestLocalLiteralAssignment covers a local variable declaration with a
// literal initializer: `function f(){ var x = 1; }`.
func TestLocalLiteralAssignment(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Name:   ident("f"),
		Params: nil,
		Body: &ast.BlockStatement{
			Body: []ast.Statement{
				&ast.VariableDeclaration{
					Kind: "var",
					Declarations: []*ast.VariableDeclarator{
						{Name: ident("x"), Init: numLit(1, "1")},
					},
				},
			},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	want := []string{
		"function2 'f' () (r:1='this')",
		"push 1",
		"setRegister r:2 /*local:x*/",
		"pop",
		"end // of function f",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestMemberAssignmentInFunction covers a void-offered member assignment
// inside a function: `function f(){ atv.bar = 1; }`.
func TestMemberAssignmentInFunction(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Name: ident("f"),
		Body: &ast.BlockStatement{
			Body: []ast.Statement{
				&ast.ExpressionStatement{
					Expression: &ast.AssignmentExpression{
						Operator: "=",
						Left: &ast.MemberExpression{
							Object:   ident("atv"),
							Property: ident("bar"),
						},
						Right: numLit(1, "1"),
					},
				},
			},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	want := []string{
		"function2 'f' () (r:1='this')",
		"push 'atv'",
		"getVariable",
		"push 'bar'",
		"push 1",
		"setMember",
		"end // of function f",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestReturnOfConcatenation covers a function with parameter `v`
// returning `'x' + (v + 1)`.
func TestReturnOfConcatenation(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Name:   ident("f"),
		Params: []*ast.Identifier{ident("v")},
		Body: &ast.BlockStatement{
			Body: []ast.Statement{
				&ast.ReturnStatement{
					Argument: &ast.BinaryExpression{
						Operator: ast.OpAdd,
						Left:     &ast.StringLiteral{Value: "x"},
						Right: &ast.BinaryExpression{
							Operator: ast.OpAdd,
							Left:     ident("v"),
							Right:    numLit(1, "1"),
						},
					},
				},
			},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	want := []string{
		"function2 'f' (r:2='v') (r:1='this')",
		"push 'x'",
		"push r:2",
		"push 1",
		"add",
		"add",
		"return",
		"end // of function f",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestWhileWithBreak covers a loop whose body unconditionally breaks:
// `while (n) { break; }`.
func TestWhileWithBreak(t *testing.T) {
	prog := &ast.Program{
		Body: []ast.Statement{
			&ast.WhileStatement{
				Test: ident("n"),
				Body: &ast.BlockStatement{
					Body: []ast.Statement{&ast.BreakStatement{}},
				},
			},
		},
	}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	got := normalizeLines(e.Lines())
	if len(got) != 8 {
		t.Fatalf("got %d lines, want 8: %v", len(got), got)
	}
	testLabel := strings.TrimSuffix(got[0], ":")
	endLabel := strings.TrimSuffix(got[7], ":")

	want := []string{
		testLabel + ":",
		"push 'n'",
		"getVariable",
		"not",
		"branchIfTrue " + endLabel,
		"branch " + endLabel,
		"branch " + testLabel,
		endLabel + ":",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestIfElseControlFlow covers an if/else whose branches are each a
// single call-expression statement, checking the three-label
// test/consequent/alternate shape and the intervening branches.
func TestIfElseControlFlow(t *testing.T) {
	prog := &ast.Program{
		Body: []ast.Statement{
			&ast.IfStatement{
				Test: &ast.BinaryExpression{
					Operator: ast.OpGreater,
					Left:     ident("a"),
					Right:    numLit(0, "0"),
				},
				Consequent: &ast.BlockStatement{Body: []ast.Statement{
					&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("b")}},
				}},
				Alternate: &ast.BlockStatement{Body: []ast.Statement{
					&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("c")}},
				}},
			},
		},
	}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}
	got := normalizeLines(e.Lines())

	opcodes := make([]string, len(got))
	for i, l := range got {
		opcodes[i] = strings.Fields(l)[0]
	}
	wantOpcodes := []string{
		"push", "getVariable", "push", "greaterThan", "not", "branchIfTrue",
		"L1_true:",
		"push", "push", "callFunction", "pop",
		"branch",
		"L2_false:",
		"push", "push", "callFunction", "pop",
		"L3_end:",
	}
	if len(opcodes) != len(wantOpcodes) {
		t.Fatalf("got %d lines %v, want %d: %v", len(opcodes), opcodes, len(wantOpcodes), wantOpcodes)
	}
	for i := range opcodes {
		want := wantOpcodes[i]
		if strings.HasSuffix(want, ":") {
			if got[i] != want {
				t.Fatalf("line %d: got %q want label %q", i, got[i], want)
			}
			continue
		}
		if opcodes[i] != want {
			t.Fatalf("line %d: got opcode %q want %q (line=%q)", i, opcodes[i], want, got[i])
		}
	}
}

// TestAssignmentCaseOneRegisterTarget covers an assignment whose left
// side resolves to a register-variable binding: the right-hand side
// evaluates once and is written straight into that register, with no
// borrowed register and no extra push/pop.
func TestAssignmentCaseOneRegisterTarget(t *testing.T) {
	e := New(nil)
	e.PushRegisterVariables(map[string]register.Register{"x": {Id: 5}})
	defer e.PopRegisterVariables()

	expr := &ast.AssignmentExpression{
		Operator: "=",
		Left:     ident("x"),
		Right:    numLit(1, "1"),
	}
	ack, err := e.generateExpression(expr, valueHint())
	if err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	if ack {
		t.Fatalf("got ack=true, want false: a value-consuming assignment must not claim its caller's pop")
	}

	want := []string{
		"push 1",
		"setRegister r:5",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestAssignmentCaseFourInsideFunction covers a non-void assignment to a
// plain (non-register) name whose right-hand side is not a pushable
// literal, evaluated inside a function: `return a = c;`. The result is
// carried through a temporary register rather than re-evaluating the
// right-hand side.
func TestAssignmentCaseFourInsideFunction(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Name: ident("f"),
		Body: &ast.BlockStatement{
			Body: []ast.Statement{
				&ast.ReturnStatement{
					Argument: &ast.AssignmentExpression{
						Operator: "=",
						Left:     ident("a"),
						Right:    ident("c"),
					},
				},
			},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	e := New(nil)
	if err := e.GenerateProgram(prog); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}

	want := []string{
		"function2 'f' () (r:1='this')",
		"push 'a'",
		"push 'c'",
		"getVariable",
		"setRegister r:2",
		"setVariable",
		"push r:2",
		"return",
		"end // of function f",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// TestAssignmentCaseFiveRootLevel covers a non-void, non-literal-RHS
// assignment evaluated at the root (outside any function): `a = c`
// consumed as a value. The algorithm borrows r:1 around the assignment
// rather than allocating a temporary, since the root frame has no
// function-local register pool to draw from.
func TestAssignmentCaseFiveRootLevel(t *testing.T) {
	expr := &ast.AssignmentExpression{
		Operator: "=",
		Left:     ident("a"),
		Right:    ident("c"),
	}

	e := New(nil)
	ack, err := e.generateExpression(expr, valueHint())
	if err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	if ack {
		t.Fatalf("got ack=true, want false: a value-consuming assignment must not claim its caller's pop")
	}

	want := []string{
		"push r:1",
		"push 'a'",
		"push 'c'",
		"getVariable",
		"setRegister r:1",
		"setVariable",
		"setRegister r:1",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}
