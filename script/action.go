package script

import "filmstrip/geom"

// ActionKind tags the variant an Action holds. Actions are the parser's
// output — the core only consumes them (spec.md §1's "assumes a stream of
// already-parsed records").
type ActionKind int

const (
	ActionPlay ActionKind = iota
	ActionStop
	ActionGotoFrame
	ActionGotoLabel
	ActionGetUrl
	ActionWaitForFrame
	ActionWaitForFrame2
	ActionConstantPool
	ActionPush
	ActionPop
	ActionGetVariable
	ActionSetVariable
	ActionCallFunction
	ActionCallMethod
	// ActionUnknown covers any opcode the upstream parser recognized but
	// that has no lowering here; Compile halts on it the same way it
	// halts on a too-dynamic construct.
	ActionUnknown
)

// PushItemKind tags what a single Push operand refers to.
type PushItemKind int

const (
	PushUndefined PushItemKind = iota
	PushNull
	PushBool
	PushI32
	PushF32
	PushF64
	PushStr
	// PushConstant resolves to Str(consts[Index]) against the active
	// constant pool at the time the Push action runs.
	PushConstant
	// PushRegister resolves to the current value of register Index.
	PushRegister
)

// PushItem is one operand of a Push action.
type PushItem struct {
	Kind  PushItemKind
	Bool  bool
	I32   int32
	F32   float32
	F64   float64
	Str   string
	Index int // PushConstant, PushRegister
}

// Action is one instruction of the source stack-machine bytecode.
type Action struct {
	Kind ActionKind

	Frame geom.Frame // ActionGotoFrame
	Label string     // ActionGotoLabel, ActionUnknown (opcode name for diagnostics)

	Url, Target string // ActionGetUrl

	SkipCount uint8 // ActionWaitForFrame, ActionWaitForFrame2

	Constants []string // ActionConstantPool

	PushItems []PushItem // ActionPush
}
