// Package vm implements the stack-based bytecode interpreter: a fixed
// value stack, a fixed call-frame stack, globals, and the full opcode
// dispatch loop value.Chunk instructions drive (spec.md §4.3).
package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/informatter/lumen/compiler"
	"github.com/informatter/lumen/value"
)

const (
	// StackSize is 256*256 value slots, a Go ARRAY rather than a slice so
	// that *value.Value pointers handed out to open upvalues stay valid
	// for the VM's whole lifetime (spec.md §4.3).
	StackSize = 256 * 256
	// FramesMax bounds call depth; exceeding it is a runtime stack
	// overflow (spec.md §4.3/§7).
	FramesMax = 256
)

// CallFrame records one in-progress invocation: the executing closure, an
// instruction pointer into its chunk, and the base slot of its locals on
// the value stack.
type CallFrame struct {
	closure *value.Closure
	ip      int
	slots   int
}

// VM executes compiled bytecode. It is single-use per Interpret call in
// the sense that a runtime error aborts the whole run (spec.md §5); a
// fresh VM is normally created per script/REPL invocation via New.
type VM struct {
	stack    [StackSize]value.Value
	stackTop int

	frames     [FramesMax]CallFrame
	frameCount int

	globals      map[string]value.Value
	openUpvalues *value.Upvalue

	// Trace enables per-instruction disassembly logging at Debug level,
	// the VM's trace mode (spec.md §4.4).
	Trace bool
}

// New creates a VM with an empty globals table seeded with the native
// standard library (clock, len, type).
func New() *VM {
	vm := &VM{globals: make(map[string]value.Value)}
	vm.defineNatives()
	return vm
}

// Interpret wraps fn in a Closure, installs it as frame 0, and runs the
// dispatch loop to completion (spec.md §4.3 "interpret(top_level_function)").
func (vm *VM) Interpret(fn *value.Function) error {
	// Drop any frames and stack left behind by a run a runtime error aborted.
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
	closure := &value.Closure{Function: fn, Upvalues: make([]*value.Upvalue, fn.UpvalueCount)}
	vm.push(value.Obj(closure))
	if err := vm.call(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// call pushes a new frame for closure, validating arity and the frame
// stack's capacity (spec.md §4.3 CALL semantics / §7 stack overflow).
func (vm *VM) call(closure *value.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("expected %d arguments but got %d", closure.Function.Arity, argCount)
	}
	if vm.frameCount == FramesMax {
		return vm.runtimeError("stack overflow")
	}
	frame := &vm.frames[vm.frameCount]
	frame.closure = closure
	frame.ip = 0
	frame.slots = vm.stackTop - argCount - 1
	vm.frameCount++
	return nil
}

// callValue dispatches CALL by callee variant: a Closure pushes a new
// frame; a Native runs to completion synchronously and its result
// replaces the callee and arguments in place (spec.md §4.3 CALL).
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if callee.IsObject() {
		switch obj := callee.AsObject().(type) {
		case *value.Closure:
			return vm.call(obj, argCount)
		case *value.Native:
			args := vm.stack[vm.stackTop-argCount : vm.stackTop]
			result, err := obj.Fn(args)
			if err != nil {
				return vm.runtimeError("%s", err.Error())
			}
			vm.stackTop -= argCount + 1
			vm.push(result)
			return nil
		}
	}
	return vm.runtimeError("can only call functions and classes")
}

// captureUpvalue finds or creates the open upvalue for the stack slot at
// index slot, keeping the VM's open-upvalue list sorted by descending
// slot so closures that capture the same local share one Upvalue object
// (spec.md §8 "Closure identity").
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	var prev *value.Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}
	created := value.NewUpvalue(slot, &vm.stack[slot])
	created.Next = cur
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above fromSlot, migrating
// each one's value off the stack into its own cell. Called at scope exit
// (OP_CLOSE_UPVALUE) and at RETURN, so a closure that outlives the frame
// whose local it captured keeps observing the right value (spec.md §9's
// redesign note; see end-to-end scenario 5).
func (vm *VM) closeUpvalues(fromSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= fromSlot {
		u := vm.openUpvalues
		u.Close()
		vm.openUpvalues = u.Next
	}
}

func (vm *VM) runtimeError(format string, args ...any) error {
	return RuntimeError{Message: fmt.Sprintf(format, args...), Trace: vm.stackTrace()}
}

// stackTrace walks frames innermost-first, one "[line N] in <name>" entry
// per frame (spec.md §4.3 "Failure semantics").
func (vm *VM) stackTrace() []string {
	trace := make([]string, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		line := frame.closure.Function.Chunk.Line(frame.ip - 1)
		name := frame.closure.Function.String()
		if frame.closure.Function.Kind == value.FuncScript {
			name = "script"
		}
		trace = append(trace, fmt.Sprintf("[line %d] in %s", line, name))
	}
	return trace
}

// run is the dispatch loop: fetch one byte, execute, continue, until
// frame 0 returns or a runtime error aborts execution.
func (vm *VM) run() error {
	for {
		frame := &vm.frames[vm.frameCount-1]
		chunk := &frame.closure.Function.Chunk

		if vm.Trace {
			instr, _ := compiler.DisassembleInstruction(chunk, frame.ip)
			logrus.WithField("stackDepth", vm.stackTop).Debug(instr.Text)
		}

		op := compiler.Opcode(chunk.Code[frame.ip])
		frame.ip++

		switch op {
		case compiler.OP_CONSTANT:
			idx := chunk.Code[frame.ip]
			frame.ip++
			vm.push(chunk.Constants[idx])

		case compiler.OP_NIL:
			vm.push(value.Nil())
		case compiler.OP_TRUE:
			vm.push(value.Bool(true))
		case compiler.OP_FALSE:
			vm.push(value.Bool(false))

		case compiler.OP_POP:
			vm.pop()

		case compiler.OP_GET_LOCAL:
			slot := chunk.Code[frame.ip]
			frame.ip++
			vm.push(vm.stack[frame.slots+int(slot)])

		case compiler.OP_SET_LOCAL:
			slot := chunk.Code[frame.ip]
			frame.ip++
			vm.stack[frame.slots+int(slot)] = vm.peek(0)

		case compiler.OP_GET_GLOBAL:
			name := chunk.Constants[chunk.Code[frame.ip]].AsString()
			frame.ip++
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("undefined variable '%s'", name)
			}
			vm.push(v)

		case compiler.OP_SET_GLOBAL:
			name := chunk.Constants[chunk.Code[frame.ip]].AsString()
			frame.ip++
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("undefined variable '%s'", name)
			}
			vm.globals[name] = vm.peek(0)

		case compiler.OP_DEFINE_GLOBAL:
			name := chunk.Constants[chunk.Code[frame.ip]].AsString()
			frame.ip++
			vm.globals[name] = vm.pop()

		case compiler.OP_GET_UPVALUE:
			slot := chunk.Code[frame.ip]
			frame.ip++
			vm.push(frame.closure.Upvalues[slot].Get())

		case compiler.OP_SET_UPVALUE:
			slot := chunk.Code[frame.ip]
			frame.ip++
			frame.closure.Upvalues[slot].Set(vm.peek(0))

		case compiler.OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(a.Equal(b)))

		case compiler.OP_GREATER, compiler.OP_LESS:
			b := vm.peek(0)
			a := vm.peek(1)
			if !a.IsNumber() || !b.IsNumber() {
				return vm.runtimeError("operands must be numbers")
			}
			vm.pop()
			vm.pop()
			if op == compiler.OP_GREATER {
				vm.push(value.Bool(a.AsNumber() > b.AsNumber()))
			} else {
				vm.push(value.Bool(a.AsNumber() < b.AsNumber()))
			}

		case compiler.OP_ADD:
			b := vm.peek(0)
			a := vm.peek(1)
			switch {
			case a.IsString() && b.IsString():
				vm.pop()
				vm.pop()
				vm.push(value.Str(a.AsString() + b.AsString()))
			case a.IsNumber() && b.IsNumber():
				vm.pop()
				vm.pop()
				vm.push(value.Number(a.AsNumber() + b.AsNumber()))
			default:
				return vm.runtimeError("operands must be two numbers or two strings")
			}

		case compiler.OP_SUBTRACT, compiler.OP_MULTIPLY, compiler.OP_DIVIDE:
			b := vm.peek(0)
			a := vm.peek(1)
			if !a.IsNumber() || !b.IsNumber() {
				return vm.runtimeError("operands must be numbers")
			}
			vm.pop()
			vm.pop()
			switch op {
			case compiler.OP_SUBTRACT:
				vm.push(value.Number(a.AsNumber() - b.AsNumber()))
			case compiler.OP_MULTIPLY:
				vm.push(value.Number(a.AsNumber() * b.AsNumber()))
			case compiler.OP_DIVIDE:
				vm.push(value.Number(a.AsNumber() / b.AsNumber()))
			}

		case compiler.OP_NOT:
			vm.push(value.Bool(vm.pop().IsFalsey()))

		case compiler.OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("operand must be a number")
			}
			v := vm.pop()
			vm.push(value.Number(-v.AsNumber()))

		case compiler.OP_PRINT:
			fmt.Println(vm.pop().String())

		case compiler.OP_JUMP:
			offset := binary.BigEndian.Uint16(chunk.Code[frame.ip : frame.ip+2])
			frame.ip += 2
			frame.ip += int(offset)

		case compiler.OP_JUMP_IF_FALSE:
			offset := binary.BigEndian.Uint16(chunk.Code[frame.ip : frame.ip+2])
			frame.ip += 2
			if vm.peek(0).IsFalsey() {
				frame.ip += int(offset)
			}

		case compiler.OP_LOOP:
			offset := binary.BigEndian.Uint16(chunk.Code[frame.ip : frame.ip+2])
			frame.ip += 2
			frame.ip -= int(offset)

		case compiler.OP_CALL:
			argCount := int(chunk.Code[frame.ip])
			frame.ip++
			callee := vm.peek(argCount)
			if err := vm.callValue(callee, argCount); err != nil {
				return err
			}

		case compiler.OP_CLOSURE:
			idx := chunk.Code[frame.ip]
			frame.ip++
			fn, _ := chunk.Constants[idx].AsObject().(*value.Function)
			closure := &value.Closure{Function: fn, Upvalues: make([]*value.Upvalue, fn.UpvalueCount)}
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := chunk.Code[frame.ip]
				index := chunk.Code[frame.ip+1]
				frame.ip += 2
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.slots + int(index))
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			vm.push(value.Obj(closure))

		case compiler.OP_CLOSE_UPVALUE:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case compiler.OP_RETURN:
			result := vm.pop()
			vm.closeUpvalues(frame.slots)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = frame.slots
			vm.push(result)

		default:
			return vm.runtimeError("unknown opcode %d", op)
		}
	}
}
