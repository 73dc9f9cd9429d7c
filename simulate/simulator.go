// Package simulate is the final pipeline stage: it walks the coalesced
// instruction lines and annotates each with a `//`-prefixed comment
// showing the symbolic contents of the stack machine at that point,
// purely as a debugging aid. It never executes real values and never
// second-guesses the generator's correctness; on the first branch in a
// function it bails out for the remainder of that function rather than
// attempt control-flow analysis.
package simulate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrStackInvariant is returned (wrapped with the offending line) when a
// `return` is reached with more than one value on the current stack.
var ErrStackInvariant = errors.New("stack invariant violation")

// frame is one function's symbolic stack plus its own bail-out flag; the
// program's top-level statements run in an implicit root frame that is
// never popped.
type frame struct {
	stack      []string
	suppressed bool
}

func newFrame() *frame { return &frame{} }

func (f *frame) render() string {
	if len(f.stack) == 0 {
		return "--<empty>"
	}
	return strings.Join(f.stack, "|")
}

func (f *frame) push(tok string) { f.stack = append(f.stack, tok) }

func (f *frame) pop() string {
	if len(f.stack) == 0 {
		return "<underflow>"
	}
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return top
}

// popN removes and returns the top n elements in plain pop order (element
// 0 is the topmost/last-pushed). genCallExpression and friends push
// arguments in reverse, so a raw top-to-bottom pop already yields them in
// source call order; see DESIGN.md for how `new`/`callFunction`/
// `callMethod` are reconciled to this same argument-order convention.
func (f *frame) popN(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.pop())
	}
	return out
}

// binaryOpSymbols maps each opcode mnemonic to the source-text symbol
// rendered between its operands.
var binaryOpSymbols = map[string]string{
	"add":          "+",
	"subtract":     "-",
	"multiply":     "*",
	"divide":       "/",
	"modulo":       "%",
	"equals":       "==",
	"strictEquals": "===",
	"lessThan":     "<",
	"greaterThan":  ">",
	"bitwiseAnd":   "&",
	"bitwiseOr":    "|",
	"bitwiseXor":   "^",
	"shiftLeft":    "<<",
	"shiftRight":   ">>",
	"shiftRight2":  ">>>",
	"instanceOf":   " instanceof ",
}

func wrapIfNeeded(tok, sym string) string {
	if containsBareOperator(tok, sym) || needsParens(tok) {
		return "(" + tok + ")"
	}
	return tok
}

// Simulate returns lines annotated with stack-state comments. It never
// mutates the input slice.
func Simulate(lines []string) ([]string, error) {
	pad := padWidth(lines)

	frames := []*frame{newFrame()}
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			out = append(out, line)
			continue
		case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "/*"), strings.HasSuffix(trimmed, ":"):
			out = append(out, line)
			continue
		}

		current := frames[len(frames)-1]
		opcode, rest := splitOpcodeLine(trimmed)

		switch opcode {
		case "function2":
			newF := newFrame()
			if !current.suppressed && isAnonymousFunction2(rest) {
				current.push("function")
			}
			frames = append(frames, newF)
			if current.suppressed {
				out = append(out, line)
			} else {
				out = append(out, annotate(line, newF.render(), pad))
			}
			continue
		case "end":
			wasSuppressed := current.suppressed
			if len(frames) > 1 {
				frames = frames[:len(frames)-1]
			}
			parent := frames[len(frames)-1]
			if wasSuppressed {
				out = append(out, line)
			} else {
				out = append(out, annotate(line, parent.render(), pad))
			}
			continue
		}

		if current.suppressed {
			out = append(out, line)
			continue
		}

		if err := applyEffect(current, opcode, rest); err != nil {
			return nil, errors.Wrapf(err, "line %d: %q", i+1, line)
		}
		out = append(out, annotate(line, current.render(), pad))

		switch opcode {
		case "branch", "branchIfTrue":
			current.suppressed = true
		}
	}

	return out, nil
}

// splitOpcodeLine splits a trimmed instruction line into its opcode and
// the remainder (operands, unparsed), mirroring codegen.formatInstruction's
// "<opcode> <operands>" shape.
func splitOpcodeLine(trimmed string) (opcode, rest string) {
	idx := strings.IndexByte(trimmed, ' ')
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], trimmed[idx+1:]
}

// isAnonymousFunction2 reports whether a function2 header carries no name,
// i.e. its remainder starts directly with the arg-list paren rather than
// a quoted name. An anonymous function pushes the literal `function`
// token onto the outer stack to represent itself as a value.
func isAnonymousFunction2(rest string) bool {
	rest = strings.TrimSpace(rest)
	return strings.HasPrefix(rest, "(")
}

func applyEffect(f *frame, opcode, rest string) error {
	switch opcode {
	case "push":
		for _, tok := range splitOperands(rest) {
			f.push(tok)
		}
	case "getVariable":
		tok := f.pop()
		if isQuoted(tok) {
			f.push(unquote(tok))
		} else {
			f.push(tok)
		}
	case "getMember":
		prop := f.pop()
		obj := f.pop()
		if isQuoted(prop) && isIdentifierLike(unquote(prop)) {
			f.push(obj + "." + unquote(prop))
		} else {
			f.push(obj + "[" + prop + "]")
		}
	case "new":
		class := f.pop()
		argc, err := popInt(f)
		if err != nil {
			return err
		}
		args := f.popN(argc)
		name := class
		if isQuoted(class) {
			name = unquote(class)
		}
		f.push("new " + name + "(" + strings.Join(args, ", ") + ")")
	case "callFunction":
		name := f.pop()
		argc, err := popInt(f)
		if err != nil {
			return err
		}
		args := f.popN(argc)
		rendered := name
		if isQuoted(name) {
			rendered = unquote(name)
		}
		f.push(rendered + "(" + strings.Join(args, ", ") + ")")
	case "callMethod":
		name := f.pop()
		obj := f.pop()
		argc, err := popInt(f)
		if err != nil {
			return err
		}
		args := f.popN(argc)
		rendered := name
		if isQuoted(name) {
			rendered = unquote(name)
		}
		f.push(obj + "." + rendered + "(" + strings.Join(args, ", ") + ")")
	case "pop":
		f.pop()
	case "setRegister":
		// non-consuming: leaves the top-of-stack value in place
	case "setVariable":
		f.pop()
		f.pop()
	case "setMember":
		f.pop()
		f.pop()
		f.pop()
	case "not":
		x := f.pop()
		f.push("!(" + x + ")")
	case "increment":
		x := f.pop()
		if needsParens(x) {
			x = "(" + x + ")"
		}
		f.push(x + " + 1")
	case "decrement":
		x := f.pop()
		if needsParens(x) {
			x = "(" + x + ")"
		}
		f.push(x + " - 1")
	case "branchIfTrue":
		f.pop()
	case "branch":
		// no stack change
	case "return":
		if len(f.stack) > 1 {
			return ErrStackInvariant
		}
	case "int":
		// treated like `not`: unary, in-place transform of the top.
		x := f.pop()
		f.push("int(" + x + ")")
	default:
		if sym, ok := binaryOpSymbols[opcode]; ok {
			right := f.pop()
			left := f.pop()
			f.push(wrapIfNeeded(left, sym) + sym + wrapIfNeeded(right, sym))
			return nil
		}
		return errors.Errorf("unrecognized opcode %q", opcode)
	}
	return nil
}

func popInt(f *frame) (int, error) {
	tok := f.pop()
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "expected integer argc, got %q", tok)
	}
	return n, nil
}

// padWidth computes 4 + the longest non-comment, non-label, non-function2
// line.
func padWidth(lines []string) int {
	longest := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasSuffix(trimmed, ":") {
			continue
		}
		opcode, _ := splitOpcodeLine(trimmed)
		if opcode == "function2" {
			continue
		}
		if len(line) > longest {
			longest = len(line)
		}
	}
	return longest + 4
}

func annotate(line, contents string, pad int) string {
	if len(line) < pad {
		line += strings.Repeat(" ", pad-len(line))
	} else {
		line += " "
	}
	return fmt.Sprintf("%s// %s", line, contents)
}
