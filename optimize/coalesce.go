// Package optimize is the peephole pass that sits between the generator
// and the simulator (generate -> coalesce -> simulate). It is a pure
// line-rewriter: it never re-parses the AST, only the already-emitted
// text, mirroring how package codegen treats each accumulated string as
// the unit of work (codegen.Emitter.Lines).
package optimize

import (
	"regexp"
)

// pushLineRE matches an instruction line consisting of a `push` opcode
// and its operand list, at any indent depth. Coalescing only looks at
// the opcode token, so a line carrying a trailing stack-simulator
// comment (run after this pass) never reaches here.
var pushLineRE = regexp.MustCompile(`^(\s*)push (.+)$`)

// CoalescePushes merges consecutive `push` lines into one, repeating at
// the same output index so three or more adjacent pushes collapse into
// a single line. The merged line keeps the first line's indentation;
// everything else (labels, non-push opcodes, function2/end) passes
// through unchanged.
func CoalescePushes(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		indent, operands, ok := matchPush(line)
		if !ok {
			out = append(out, line)
			continue
		}

		if len(out) > 0 {
			if prevIndent, prevOperands, prevOK := matchPush(out[len(out)-1]); prevOK {
				out[len(out)-1] = prevIndent + "push " + prevOperands + ", " + operands
				continue
			}
		}
		out = append(out, indent+"push "+operands)
	}
	return out
}

func matchPush(line string) (indent, operands string, ok bool) {
	m := pushLineRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
