package script

import "filmstrip/geom"

// OpKind tags the variant an Op holds.
type OpKind int

const (
	OpPlay OpKind = iota
	OpStop
	OpGotoFrame
	OpGotoLabel
	OpGetUrl
	OpGetVar
	OpSetVar
	OpCall
	OpCallMethod
)

// Op is one instruction of the linear three-address form the stack machine
// compiles down to. Operands that are themselves the result of a prior op
// carry a Value with Kind == VOpRes rather than duplicating it, so the op
// list is a DAG, not a tree (spec.md §9).
type Op struct {
	Kind OpKind

	Frame geom.Frame // OpGotoFrame
	Label string     // OpGotoLabel

	Url, Target string // OpGetUrl

	Name string // OpGetVar, OpSetVar, OpCallMethod

	Value Value // OpSetVar's assigned value

	Callee   Value   // OpCall
	Receiver Value   // OpCallMethod
	Args     []Value // OpCall, OpCallMethod
}

// CompiledScript is the ordered op list produced by Compile. Ops reference
// earlier ops in the same slice by index via Value{Kind: VOpRes}.
type CompiledScript struct {
	Ops []Op
}

// resultOf returns a Value that back-references the op just appended to ops,
// i.e. OpRes(len(ops)-1). It is a convenience for the compiler: every op
// that pushes a result onto the compile-time stack does so immediately
// after appending itself.
func resultOf(ops []Op) Value { return OpRes(len(ops) - 1) }
