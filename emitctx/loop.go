package emitctx

// LoopContext exposes EmitBreak, which jumps to the enclosing loop's end
// label. The label itself is supplied by the generator when the loop is
// compiled; LoopContext only remembers it.
type LoopContext struct {
	endLabel string
	emit     func(label string)
}

// NewLoopContext builds a LoopContext whose EmitBreak calls emit(endLabel).
// emit is the generator's instruction-emission hook, kept decoupled from
// this package so emitctx has no dependency on the instruction model.
func NewLoopContext(endLabel string, emit func(label string)) *LoopContext {
	return &LoopContext{endLabel: endLabel, emit: emit}
}

// EmitBreak jumps to the loop's end label.
func (lc *LoopContext) EmitBreak() {
	lc.emit(lc.endLabel)
}
