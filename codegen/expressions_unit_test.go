package codegen

import (
	"strings"
	"testing"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
)

func TestArrayExpressionReverseOrder(t *testing.T) {
	e := New(nil)
	arr := &ast.ArrayExpression{Elements: []ast.Expression{numLit(1, "1"), numLit(2, "2"), numLit(3, "3")}}
	if _, err := e.generateExpression(arr, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{"push 3", "push 2", "push 1", "push 3", "initArray"}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestNewExpressionArgsAndClassName(t *testing.T) {
	e := New(nil)
	n := &ast.NewExpression{Callee: ident("Point"), Arguments: []ast.Expression{numLit(1, "1"), numLit(2, "2")}}
	if _, err := e.generateExpression(n, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{"push 2", "push 1", "push 2", "push 'Point'", "new"}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestNewExpressionRejectsNonIdentifierCallee(t *testing.T) {
	e := New(nil)
	n := &ast.NewExpression{Callee: &ast.MemberExpression{Object: ident("ns"), Property: ident("Point")}}
	_, err := e.generateExpression(n, valueHint())
	if err == nil {
		t.Fatalf("expected error for non-Identifier new callee")
	}
	ce, ok := err.(interface{ Error() string })
	_ = ok
	if !strings.Contains(ce.Error(), "UnimplementedFeature") {
		t.Fatalf("expected UnimplementedFeature error, got %v", err)
	}
}

func TestCallExpressionTraceIsUnsupported(t *testing.T) {
	e := New(nil)
	call := &ast.CallExpression{Callee: ident("trace"), Arguments: []ast.Expression{&ast.StringLiteral{Value: "hi"}}}
	_, err := e.generateExpression(call, valueHint())
	if err == nil || !strings.Contains(err.Error(), "UnsupportedIntrinsic") {
		t.Fatalf("expected UnsupportedIntrinsic, got %v", err)
	}
}

func TestCallExpressionIntWrongArity(t *testing.T) {
	e := New(nil)
	call := &ast.CallExpression{Callee: ident("int"), Arguments: []ast.Expression{numLit(1, "1"), numLit(2, "2")}}
	_, err := e.generateExpression(call, valueHint())
	if err == nil || !strings.Contains(err.Error(), "WrongArity") {
		t.Fatalf("expected WrongArity, got %v", err)
	}
}

func TestCallExpressionIntConversion(t *testing.T) {
	e := New(nil)
	call := &ast.CallExpression{Callee: ident("int"), Arguments: []ast.Expression{numLit(1.9, "1.9")}}
	if _, err := e.generateExpression(call, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{"push 1.9", "int"}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestUnaryNot(t *testing.T) {
	e := New(nil)
	u := &ast.UnaryExpression{Operator: "!", Prefix: true, Argument: ident("flag")}
	if _, err := e.generateExpression(u, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{"push 'flag'", "getVariable", "not"}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestUnaryRejectsPrefixIncrement(t *testing.T) {
	e := New(nil)
	u := &ast.UpdateExpression{Operator: "++", Prefix: true, Argument: ident("x")}
	if _, err := e.generateExpression(u, valueHint()); err == nil {
		t.Fatalf("expected error for prefix update")
	}
}

func TestPostfixIncrementOnGlobal(t *testing.T) {
	e := New(nil)
	u := &ast.UpdateExpression{Operator: "++", Prefix: false, Argument: ident("counter")}
	if _, err := e.generateExpression(u, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{"push 'counter'", "push 'counter'", "getVariable", "increment", "setVariable"}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTemplateLiteralAccumulator(t *testing.T) {
	e := New(nil)
	tmpl := &ast.TemplateLiteral{
		Quasis:      []string{"hello ", "!"},
		Expressions: []ast.Expression{ident("name")},
	}
	if _, err := e.generateExpression(tmpl, valueHint()); err != nil {
		t.Fatalf("generateExpression: %v", err)
	}
	want := []string{
		"push ''",
		"push 'hello '",
		"push 'name'",
		"getVariable",
		"add",
		"add",
		"push '!'",
		"add",
	}
	got := normalizeLines(e.Lines())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestEscapeStringEscapesControlChars(t *testing.T) {
	got := escapeString("a\nb\tc")
	want := `'a\nb\tc'`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestIsPushableLiteral(t *testing.T) {
	cases := []struct {
		expr ast.Expression
		want bool
	}{
		{numLit(1, "1"), true},
		{&ast.BooleanLiteral{Value: true}, true},
		{&ast.StringLiteral{Value: "x"}, true},
		{&ast.NullLiteral{}, true},
		{ident("undefined"), true},
		{ident("x"), false},
		{&ast.ArrayExpression{}, false},
	}
	for _, c := range cases {
		if got := isPushableLiteral(c.expr); got != c.want {
			t.Fatalf("isPushableLiteral(%T) = %v, want %v", c.expr, got, c.want)
		}
	}
}
