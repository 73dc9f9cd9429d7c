package codegen

// mode is an explicit emission-mode parameter threaded through the
// recursive visitor calls, rather than a pair of mutable boolean fields
// on a visitor struct.
type mode int

const (
	// modeValue means the caller needs exactly one value left on the
	// stack: the default for every expression position except the
	// direct child of ExpressionStatement.
	modeValue mode = iota
	// modeVoid means the caller does not need the result value kept on
	// the stack; it is offered the chance to clean up its own stack
	// effect (e.g. callee-cleanup assignment) instead of being forced to
	// push-then-pop.
	modeVoid
)

// hint bundles mode with the member-access "skip get" flag, carried as an
// explicit parameter to member/identifier emission instead of a mutated
// AST field.
type hint struct {
	mode mode
	// skipGet tells MemberExpression/Identifier emission to stop after
	// pushing object+property (or name) without issuing the trailing
	// getMember/getVariable — used by assignment left-hand sides and by
	// call callees.
	skipGet bool
}

func valueHint() hint { return hint{mode: modeValue} }
func voidHint() hint  { return hint{mode: modeVoid} }

func (h hint) withSkipGet() hint {
	h.skipGet = true
	return h
}
