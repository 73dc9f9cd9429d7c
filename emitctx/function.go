package emitctx

import (
	"github.com/pkg/errors"

	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// ErrDuplicateDeclaration is returned by DeclareVariable when a name has
// already been declared in the same function.
var ErrDuplicateDeclaration = errors.New("duplicate declaration")

// FunctionContext bundles closures over a single function's register
// allocator and its {meta, args, locals} register maps. One
// FunctionContext is constructed per enclosing function.
type FunctionContext struct {
	alloc  *register.Allocator
	meta   map[string]register.Register
	args   map[string]register.Register
	locals map[string]register.Register
}

// NewFunctionContext creates a FunctionContext over a fresh Allocator.
func NewFunctionContext() *FunctionContext {
	return &FunctionContext{
		alloc:  register.New(),
		meta:   make(map[string]register.Register),
		args:   make(map[string]register.Register),
		locals: make(map[string]register.Register),
	}
}

// DeclareMeta reserves a named meta register (e.g. "this"). The
// register itself is anonymous (empty Name) so in-body references
// render as a plain `r:<id>`, not by name; the name lives only as this
// map's key, consulted by the function2 header formatter.
func (fc *FunctionContext) DeclareMeta(name string) (register.Register, error) {
	r, err := fc.alloc.Allocate("", "")
	if err != nil {
		return register.Register{}, err
	}
	fc.meta[name] = r
	return r, nil
}

// DeclareArg reserves a named positional-parameter register; see
// DeclareMeta for why the Register itself stays anonymous.
func (fc *FunctionContext) DeclareArg(name string) (register.Register, error) {
	r, err := fc.alloc.Allocate("", "")
	if err != nil {
		return register.Register{}, err
	}
	fc.args[name] = r
	return r, nil
}

// DeclareVariable allocates a local register for name, failing with
// ErrDuplicateDeclaration if name was already declared as a local in
// this function. The register carries a "local:<name>" debug tag (e.g.
// `setRegister r:2 /*local:x*/`) but stays anonymous for the same reason
// as DeclareMeta/DeclareArg.
func (fc *FunctionContext) DeclareVariable(name string) (register.Register, error) {
	if _, exists := fc.locals[name]; exists {
		return register.Register{}, errors.Wrapf(ErrDuplicateDeclaration, "variable %q already declared", name)
	}
	r, err := fc.alloc.Allocate("", "local:"+name)
	if err != nil {
		return register.Register{}, err
	}
	fc.locals[name] = r
	return r, nil
}

// AllocTemporaryRegister allocates an anonymous short-lived register.
func (fc *FunctionContext) AllocTemporaryRegister() (register.Register, error) {
	return fc.alloc.Allocate("", "")
}

// FreeTemporaryRegister releases a register previously returned by
// AllocTemporaryRegister.
func (fc *FunctionContext) FreeTemporaryRegister(r register.Register) {
	fc.alloc.Free(r)
}

// Args returns the parameter registers; declaration order is not
// preserved by this map, so callers needing ordering (the function2
// header) sort by Register.Id.
func (fc *FunctionContext) Args() map[string]register.Register { return fc.args }

// Meta returns the meta (e.g. this) registers.
func (fc *FunctionContext) Meta() map[string]register.Register { return fc.meta }

// RegisterVariables returns the narrower projection a RegisterVariablesContext
// exposes: lookup only, searched locals then args then meta. The
// returned context shares the underlying maps, so it reflects locals
// declared after this call.
func (fc *FunctionContext) RegisterVariables() *RegisterVariablesContext {
	return &RegisterVariablesContext{locals: fc.locals, args: fc.args, meta: fc.meta}
}

// RegisterVariablesContext exposes only name resolution, searched locals,
// then args, then meta. A function pushes both a FunctionContext and a
// RegisterVariablesContext; a directive (package directive) may push a
// RegisterVariablesContext alone, built from explicit bindings rather
// than a live FunctionContext.
type RegisterVariablesContext struct {
	locals map[string]register.Register
	args   map[string]register.Register
	meta   map[string]register.Register
}

// NewExplicitRegisterVariablesContext builds a RegisterVariablesContext
// from directive-supplied bindings: all are treated as locals, since a
// directive has no args/meta distinction to offer.
func NewExplicitRegisterVariablesContext(bindings map[string]register.Register) *RegisterVariablesContext {
	return &RegisterVariablesContext{locals: bindings, args: map[string]register.Register{}, meta: map[string]register.Register{}}
}

// GetVariableRegister resolves name against locals, then args, then meta.
func (rvc *RegisterVariablesContext) GetVariableRegister(name string) (register.Register, bool) {
	if r, ok := rvc.locals[name]; ok {
		return r, true
	}
	if r, ok := rvc.args[name]; ok {
		return r, true
	}
	if r, ok := rvc.meta[name]; ok {
		return r, true
	}
	return register.Register{}, false
}
