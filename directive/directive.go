// Package directive implements comment-embedded directives: a way for
// user source that will be embedded into externally-provided functions
// to declare which VM registers back which variable names, without this
// compiler needing a full symbol table for code it didn't generate.
package directive

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/emitctx"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

const (
	pushPrefix = "@js2f/push-register-context:"
	popDirective = "@js2f/pop-register-context"
)

// ErrMalformed is returned when a directive's arguments cannot be parsed.
var ErrMalformed = errors.New("directive malformed")

// ErrMisplaced is returned when a directive appears somewhere it's not
// allowed to.
var ErrMisplaced = errors.New("directive misplaced")

// Processor scans comments for directives and pushes/pops
// RegisterVariablesContext values on behalf of the generator.
type Processor struct {
	stack *emitctx.Stack[*emitctx.RegisterVariablesContext]
}

// NewProcessor builds a Processor that manipulates the given stack, the
// same stack the generator consults when resolving identifiers.
func NewProcessor(stack *emitctx.Stack[*emitctx.RegisterVariablesContext]) *Processor {
	return &Processor{stack: stack}
}

// Process scans the given comments (one node's leading or trailing list)
// for directives and applies them in order. insideFunction must report whether the generator is
// currently inside any FunctionContext: push-register-context may only
// appear outside of one.
func (p *Processor) Process(comments []ast.Comment, insideFunction bool) error {
	for _, c := range comments {
		if err := p.processOne(strings.TrimSpace(c.Text), insideFunction); err != nil {
			return err
		}
	}
	return nil
}

// ProcessNode is a convenience wrapper running Process over both a
// node's leading and trailing comments, in that order.
func (p *Processor) ProcessNode(n ast.Node, insideFunction bool) error {
	if err := p.Process(n.Leading(), insideFunction); err != nil {
		return err
	}
	return p.Process(n.Trailing(), insideFunction)
}

func (p *Processor) processOne(text string, insideFunction bool) error {
	switch {
	case strings.HasPrefix(text, pushPrefix):
		if insideFunction {
			return errors.Wrap(ErrMisplaced, "push-register-context may only appear outside any function")
		}
		ctx, err := parsePushArgs(text[len(pushPrefix):])
		if err != nil {
			return err
		}
		p.stack.Push(ctx)
		return nil

	case text == popDirective:
		if _, ok := p.stack.Pop(); !ok {
			return errors.Wrap(ErrMisplaced, "pop-register-context with no matching push")
		}
		return nil

	default:
		return nil
	}
}

// parsePushArgs parses `r:<n>=<name> [r:<n>=<name> ...]` into a
// RegisterVariablesContext, failing if a name appears twice or any `r:<n>`
// is malformed.
func parsePushArgs(args string) (*emitctx.RegisterVariablesContext, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, errors.Wrap(ErrMalformed, "push-register-context requires at least one binding")
	}

	bindings := make(map[string]register.Register, len(fields))
	for _, field := range fields {
		name, reg, err := parseBinding(field)
		if err != nil {
			return nil, err
		}
		if _, exists := bindings[name]; exists {
			return nil, errors.Wrapf(ErrMalformed, "variable %q bound twice", name)
		}
		bindings[name] = reg
	}
	return emitctx.NewExplicitRegisterVariablesContext(bindings), nil
}

// parseBinding parses one `r:<n>=<name>` token.
func parseBinding(field string) (name string, reg register.Register, err error) {
	eq := strings.IndexByte(field, '=')
	if eq < 0 {
		return "", register.Register{}, errors.Wrapf(ErrMalformed, "expected r:<n>=<name>, got %q", field)
	}
	regPart, namePart := field[:eq], field[eq+1:]
	if !strings.HasPrefix(regPart, "r:") {
		return "", register.Register{}, errors.Wrapf(ErrMalformed, "expected r:<n>, got %q", regPart)
	}
	id, convErr := strconv.Atoi(regPart[2:])
	if convErr != nil || id < register.MinId || id > register.MaxId {
		return "", register.Register{}, errors.Wrapf(ErrMalformed, "invalid register id in %q", regPart)
	}
	if namePart == "" {
		return "", register.Register{}, errors.Wrapf(ErrMalformed, "missing variable name in %q", field)
	}
	return namePart, register.Register{Id: id, Name: namePart}, nil
}
