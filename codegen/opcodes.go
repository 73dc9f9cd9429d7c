package codegen

// Opcode mnemonics the generator emits. These are the literal text the
// downstream assembler reads, not an encoded opcode byte, so they are
// plain strings rather than a numeric enum.
const (
	OpPush         = "push"
	OpPop          = "pop"
	OpGetVariable  = "getVariable"
	OpSetVariable  = "setVariable"
	OpGetMember    = "getMember"
	OpSetMember    = "setMember"
	OpSetRegister  = "setRegister"
	OpCallFunction = "callFunction"
	OpCallMethod   = "callMethod"
	OpNew          = "new"
	OpInitArray    = "initArray"
	OpAdd          = "add"
	OpSubtract     = "subtract"
	OpMultiply     = "multiply"
	OpDivide       = "divide"
	OpModulo       = "modulo"
	OpEquals       = "equals"
	OpStrictEquals = "strictEquals"
	OpLessThan     = "lessThan"
	OpGreaterThan  = "greaterThan"
	OpNot          = "not"
	OpBranch       = "branch"
	OpBranchIfTrue = "branchIfTrue"
	OpReturn       = "return"
	OpInt          = "int"
	OpIncrement    = "increment"
	OpDecrement    = "decrement"
	OpShiftLeft    = "shiftLeft"
	OpShiftRight   = "shiftRight"
	OpShiftRight2  = "shiftRight2"
	OpBitwiseAnd   = "bitwiseAnd"
	OpBitwiseOr    = "bitwiseOr"
	OpBitwiseXor   = "bitwiseXor"
	OpInstanceOf   = "instanceOf"
)

// Literal tokens.
const (
	LitTrue  = "TRUE"
	LitFalse = "FALSE"
	LitUndef = "UNDEF"
)
