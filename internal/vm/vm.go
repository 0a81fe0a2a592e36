// Package vm implements the stack-based interpreter from spec.md §4.6: a
// simple fetch-decode-execute loop over a Chunk's byte-addressed
// instruction stream, grounded on original_source/rox/src/vm/vm.rs's
// pointer-walking loop (reshaped into an index-based ip, the idiomatic Go
// equivalent the design note in spec.md §9 explicitly allows) and
// original_source/src/chunks/value.rs's arithmetic error messages.
package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roxlang/rox/internal/bytecode"
	"github.com/roxlang/rox/internal/value"
)

// Result is the outcome of interpreting a chunk.
type Result int

const (
	Ok Result = iota
	CompileError
	RuntimeError
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "Ok"
	case CompileError:
		return "CompileError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "Unknown"
	}
}

// VM interprets one Chunk at a time against its own bounded operand stack.
type VM struct {
	stack *OperandStack
	trace bool
	log   *logrus.Logger
}

// New constructs a VM with an empty stack. Passing a non-nil logger with
// trace=true enables the per-instruction disassembly and stack dump
// spec.md §4.6 calls the "optional trace" feature.
func New(trace bool, log *logrus.Logger) *VM {
	return &VM{stack: NewOperandStack(), trace: trace, log: log}
}

// Reset empties the VM's operand stack without reallocating it, for reuse
// across REPL evaluations.
func (vm *VM) Reset() { vm.stack.Reset() }

// Run interprets chunk from offset 0, returning the result and — on Ok —
// the value the Return instruction surfaced.
func (vm *VM) Run(chunk *bytecode.Chunk) (Result, value.Value) {
	ip := 0
	code := chunk.Code

	for ip < len(code) {
		if vm.trace && vm.log != nil {
			_, text, _ := chunk.DisassembleOne(ip)
			vm.log.Debugf("%04d %s", ip, text)
			vm.log.Debugf("  stack:\t%s", vm.stack.Trace())
		}

		op := bytecode.OpCode(code[ip])
		ip++

		switch op {
		case bytecode.OpReturn:
			v, ok := vm.stack.Pop()
			if !ok {
				v = value.Empty
			}
			return Ok, v

		case bytecode.OpLoad:
			idx := int(code[ip])
			ip++
			vm.stack.Push(chunk.Constants[idx])

		case bytecode.OpLoadLong:
			idx := int(bytecode.JoinU24(code[ip], code[ip+1], code[ip+2]))
			ip += 3
			vm.stack.Push(chunk.Constants[idx])

		case bytecode.OpNegate:
			n, ok := vm.stack.Pop()
			if !ok || !n.IsNumber() {
				vm.logError("cannot negate a non-number value")
				return RuntimeError, value.Empty
			}
			vm.stack.Push(value.Number(-n.Num))

		case bytecode.OpAdd, bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide:
			result, ok := vm.binaryOp(op)
			if !ok {
				return RuntimeError, value.Empty
			}
			vm.stack.Push(result)

		default:
			vm.logError(fmt.Sprintf("unknown opcode %d", op))
			return RuntimeError, value.Empty
		}
	}

	return Ok, value.Empty
}

// binaryOp pops the right then left operand (order matters for Subtract
// and Divide), applies op, and reports failure without leaving a partial
// result pushed.
func (vm *VM) binaryOp(op bytecode.OpCode) (value.Value, bool) {
	r, rok := vm.stack.Pop()
	l, lok := vm.stack.Pop()
	if !rok || !lok || !l.IsNumber() || !r.IsNumber() {
		vm.logError(fmt.Sprintf("'%s' is not a valid operand for arithmetic", describeValue(l, r)))
		return value.Empty, false
	}

	switch op {
	case bytecode.OpAdd:
		return value.Number(l.Num + r.Num), true
	case bytecode.OpSubtract:
		return value.Number(l.Num - r.Num), true
	case bytecode.OpMultiply:
		return value.Number(l.Num * r.Num), true
	case bytecode.OpDivide:
		if r.Num == 0 {
			vm.logError("right hand side of the division is 0")
			return value.Empty, false
		}
		return value.Number(l.Num / r.Num), true
	default:
		return value.Empty, false
	}
}

func describeValue(l, r value.Value) string {
	return l.String() + ", " + r.String()
}

func (vm *VM) logError(msg string) {
	if vm.log != nil {
		vm.log.Error(msg)
	}
}
