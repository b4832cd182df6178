package script

import "filmstrip/internal/diag"

const registerCount = 256

// compiler holds the state of a single Compile call: the active constant
// pool (replaced wholesale by ConstantPool actions), the register file
// (reads only — an action that would write a register isn't modeled here
// because the source format never asks this compiler to lower one;
// spec.md §4.3 treats register writes as out of scope), and the
// compile-time value stack.
type compiler struct {
	consts []string
	regs   [registerCount]Value
	stack  []Value
	ops    []Op
	sink   *diag.Sink
}

// Compile lowers a sequence of stack-machine Actions into a linear op list.
// It is conservative: the first construct too dynamic to lower (an
// out-of-constant-pool name, an unrecognized opcode, a non-string variable
// name, ...) truncates compilation with a diagnostic on sink; the
// already-emitted op prefix is kept (spec.md §4.3, §7, §8's "script
// partiality" property).
func Compile(actions []Action, sink *diag.Sink) CompiledScript {
	c := &compiler{sink: sink}

	for _, a := range actions {
		if !c.step(a) {
			break
		}
	}

	return CompiledScript{Ops: c.ops}
}

// step executes one action against compiler state. It returns false when
// the action is too dynamic or unrecognized, signaling Compile to stop.
func (c *compiler) step(a Action) bool {
	switch a.Kind {
	case ActionPlay:
		c.emit(Op{Kind: OpPlay})
		return true
	case ActionStop:
		c.emit(Op{Kind: OpStop})
		return true
	case ActionGotoFrame:
		c.emit(Op{Kind: OpGotoFrame, Frame: a.Frame})
		return true
	case ActionGotoLabel:
		c.emit(Op{Kind: OpGotoLabel, Label: a.Label})
		return true
	case ActionGetUrl:
		c.emit(Op{Kind: OpGetUrl, Url: a.Url, Target: a.Target})
		return true

	case ActionWaitForFrame:
		// All frames are pre-loaded by construction; nothing to wait for.
		return true
	case ActionWaitForFrame2:
		if !c.pop() {
			c.tooDynamic("WaitForFrame2 with an empty stack")
			return false
		}
		return true

	case ActionConstantPool:
		c.consts = a.Constants
		return true

	case ActionPush:
		for _, item := range a.PushItems {
			c.push(c.resolvePush(item))
		}
		return true

	case ActionPop:
		if !c.pop() {
			c.tooDynamic("Pop with an empty stack")
			return false
		}
		return true

	case ActionGetVariable:
		name, ok := c.popValue()
		if !ok || name.Kind != VStr {
			c.tooDynamic("GetVariable name is not a compile-time string: %v", name)
			return false
		}
		c.emit(Op{Kind: OpGetVar, Name: name.Str})
		c.push(resultOf(c.ops))
		return true

	case ActionSetVariable:
		value, ok := c.popValue()
		if !ok {
			c.tooDynamic("SetVariable with an empty stack")
			return false
		}
		name, ok := c.popValue()
		if !ok || name.Kind != VStr {
			c.tooDynamic("SetVariable name is not a compile-time string: %v", name)
			return false
		}
		c.emit(Op{Kind: OpSetVar, Name: name.Str, Value: value})
		c.push(resultOf(c.ops))
		return true

	case ActionCallFunction:
		return c.callFunction()

	case ActionCallMethod:
		return c.callMethod()

	default:
		c.tooDynamic("unrecognized action %q", a.Label)
		return false
	}
}

func (c *compiler) callFunction() bool {
	argCount, ok := c.popArgCount()
	if !ok {
		return false
	}
	name, ok := c.popValue()
	if !ok || name.Kind != VStr {
		c.tooDynamic("CallFunction name is not a compile-time string: %v", name)
		return false
	}
	args, ok := c.popArgs(argCount)
	if !ok {
		return false
	}

	c.emit(Op{Kind: OpGetVar, Name: name.Str})
	callee := resultOf(c.ops)
	c.emit(Op{Kind: OpCall, Callee: callee, Args: args})
	c.push(resultOf(c.ops))
	return true
}

func (c *compiler) callMethod() bool {
	argCount, ok := c.popArgCount()
	if !ok {
		return false
	}
	name, ok := c.popValue()
	if !ok {
		c.tooDynamic("CallMethod with an empty stack (name)")
		return false
	}
	this, ok := c.popValue()
	if !ok {
		c.tooDynamic("CallMethod with an empty stack (this)")
		return false
	}
	args, ok := c.popArgs(argCount)
	if !ok {
		return false
	}

	if name.Kind == Undefined || (name.Kind == VStr && name.Str == "") {
		c.emit(Op{Kind: OpCall, Callee: this, Args: args})
	} else if name.Kind == VStr {
		c.emit(Op{Kind: OpCallMethod, Receiver: this, Name: name.Str, Args: args})
	} else {
		c.tooDynamic("CallMethod name is not a compile-time string: %v", name)
		return false
	}
	c.push(resultOf(c.ops))
	return true
}

// popArgCount pops the top of stack and coerces it to an argument count.
func (c *compiler) popArgCount() (int, bool) {
	v, ok := c.popValue()
	if !ok {
		c.tooDynamic("call with an empty stack (arg count)")
		return 0, false
	}
	n, ok := asI32(v)
	if !ok || n < 0 {
		c.tooDynamic("call arg count is not an integer: %v", v)
		return 0, false
	}
	return int(n), true
}

// popArgs pops n arguments off the stack and returns them in push order:
// the stack top holds the last-pushed (i.e. last) argument, so the raw pop
// sequence is reversed before returning (spec.md §4.3's
// "in push order (top = last argument)").
func (c *compiler) popArgs(n int) ([]Value, bool) {
	args := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		v, ok := c.popValue()
		if !ok {
			c.tooDynamic("call expected %d arguments, stack ran out", n)
			return nil, false
		}
		args[i] = v
	}
	return args, true
}

func (c *compiler) resolvePush(item PushItem) Value {
	switch item.Kind {
	case PushUndefined:
		return Value{Kind: Undefined}
	case PushNull:
		return Value{Kind: Null}
	case PushBool:
		return Bool(item.Bool)
	case PushI32:
		return I32(item.I32)
	case PushF32:
		return F32(item.F32)
	case PushF64:
		return F64(item.F64)
	case PushStr:
		return Str(item.Str)
	case PushConstant:
		if item.Index < 0 || item.Index >= len(c.consts) {
			return Value{Kind: Undefined}
		}
		return Str(c.consts[item.Index])
	case PushRegister:
		if item.Index < 0 || item.Index >= registerCount {
			return Value{Kind: Undefined}
		}
		return c.regs[item.Index]
	default:
		return Value{Kind: Undefined}
	}
}

func (c *compiler) emit(op Op) { c.ops = append(c.ops, op) }

func (c *compiler) push(v Value) { c.stack = append(c.stack, v) }

// popValue pops and returns the top of the compile-time stack.
func (c *compiler) popValue() (Value, bool) {
	if len(c.stack) == 0 {
		return Value{}, false
	}
	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return v, true
}

// pop discards the top of the compile-time stack.
func (c *compiler) pop() bool {
	_, ok := c.popValue()
	return ok
}

func (c *compiler) tooDynamic(format string, args ...any) {
	c.sink.Log(diag.Script, diag.TooDynamic, format, args...)
}
