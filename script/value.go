// Package script lowers the stack-machine action bytecode (§4.3 of
// spec.md) into a linear three-address op list: Value is the operand type,
// Op is the instruction type, and Compile is the stack-machine interpreter
// that performs the lowering.
package script

import "fmt"

// ValueKind tags the variant a Value holds. Value, Op, and Action are all
// closed tagged unions in the style of fcp's FCPXML element structs: a kind
// field plus the union of fields any variant might use. Adding a variant
// means touching every switch below, which is the point (spec.md §9).
type ValueKind int

const (
	Undefined ValueKind = iota
	Null
	VBool
	VI32
	VF32
	VF64
	VStr
	VOpRes
)

// Value is a compile-time operand: either a literal or a back-reference
// (OpRes) to an earlier op's result.
type Value struct {
	Kind ValueKind

	Bool bool
	I32  int32
	F32  float32
	F64  float64
	Str  string
	// OpRes is the zero-based index of a prior op in the same
	// CompiledScript, valid only when Kind == VOpRes.
	OpRes int
}

func (v Value) String() string {
	switch v.Kind {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case VBool:
		return fmt.Sprintf("%t", v.Bool)
	case VI32:
		return fmt.Sprintf("%d", v.I32)
	case VF32:
		return fmt.Sprintf("%g", v.F32)
	case VF64:
		return fmt.Sprintf("%g", v.F64)
	case VStr:
		return fmt.Sprintf("%q", v.Str)
	case VOpRes:
		return fmt.Sprintf("op[%d]", v.OpRes)
	default:
		return "<invalid value>"
	}
}

// OpRes builds a back-reference to the result of the op at index i.
func OpRes(i int) Value { return Value{Kind: VOpRes, OpRes: i} }

// Str builds a string literal value.
func Str(s string) Value { return Value{Kind: VStr, Str: s} }

// I32 builds an int32 literal value.
func I32(v int32) Value { return Value{Kind: VI32, I32: v} }

// F32 builds a float32 literal value.
func F32(v float32) Value { return Value{Kind: VF32, F32: v} }

// F64 builds a float64 literal value.
func F64(v float64) Value { return Value{Kind: VF64, F64: v} }

// Bool builds a bool literal value.
func Bool(v bool) Value { return Value{Kind: VBool, Bool: v} }

// asI32 coerces a Value to int32 for the CallFunction/CallMethod arg-count
// slot: I32 passes through, F32/F64 are accepted only if they round-trip
// through int32 exactly (spec.md §4.3's "Coercion for arg count").
func asI32(v Value) (int32, bool) {
	switch v.Kind {
	case VI32:
		return v.I32, true
	case VF32:
		n := int32(v.F32)
		if float32(n) == v.F32 {
			return n, true
		}
	case VF64:
		n := int32(v.F64)
		if float64(n) == v.F64 {
			return n, true
		}
	}
	return 0, false
}
