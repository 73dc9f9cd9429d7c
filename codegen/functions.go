package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/emitctx"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// binding pairs a declared name with the (anonymous) Register FunctionContext
// allocated for it, since the Register itself no longer carries the name
// (see emitctx.FunctionContext.DeclareArg).
type binding struct {
	name string
	reg  register.Register
}

// sortedBindings returns a map's name/register pairs ordered by ascending
// id, the order a function2 header's args/meta lists require.
func sortedBindings(m map[string]register.Register) []binding {
	list := make([]binding, 0, len(m))
	for name, r := range m {
		list = append(list, binding{name: name, reg: r})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].reg.Id < list[j].reg.Id })
	return list
}

func formatBindingList(m map[string]register.Register) string {
	list := sortedBindings(m)
	parts := make([]string, len(list))
	for i, b := range list {
		parts[i] = fmt.Sprintf("r:%d=%s", b.reg.Id, escapeString(b.name))
	}
	return strings.Join(parts, ", ")
}

// genFunctionDeclaration handles both named FunctionDeclarations and the
// anonymous FunctionExpression decode.go rewrites into one. It allocates
// a fresh register frame (meta "this" then one
// register per positional parameter), emits the function2 header,
// recurses into the body under a FunctionContext/RegisterVariablesContext
// pair, and closes with `end`.
func (e *Emitter) genFunctionDeclaration(n *ast.FunctionDeclaration) error {
	fc := emitctx.NewFunctionContext()
	if _, err := fc.DeclareMeta("this"); err != nil {
		return wrapAllocError(err, n)
	}
	for _, p := range n.Params {
		if _, err := fc.DeclareArg(p.Name); err != nil {
			return wrapAllocError(err, n)
		}
	}

	argsStr := formatBindingList(fc.Args())
	metaStr := formatBindingList(fc.Meta())
	var header string
	if n.Name != nil {
		header = fmt.Sprintf("function2 %s (%s) (%s)", escapeString(n.Name.Name), argsStr, metaStr)
	} else {
		header = fmt.Sprintf("function2 (%s) (%s)", argsStr, metaStr)
	}
	e.emitRaw(header)

	e.indent()
	e.functions.Push(fc)
	e.regVars.Push(fc.RegisterVariables())
	bodyErr := e.generateStatement(n.Body)
	e.regVars.Pop()
	e.functions.Pop()
	e.deindent()

	if bodyErr != nil {
		return bodyErr
	}

	end := "end"
	if n.Name != nil {
		end += " // of function " + n.Name.Name
	}
	e.emitRaw(end)
	return nil
}
