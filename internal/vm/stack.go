package vm

import (
	"fmt"
	"strings"

	"github.com/roxlang/rox/internal/value"
)

// stackCapacity is the fixed capacity spec.md §3 requires for the operand
// stack; original_source/rox/src/vm/stack.rs names the same constant.
const stackCapacity = 4096

// OperandStack is a fixed-capacity LIFO of RuntimeValues. Unlike the
// original's raw-pointer arithmetic (see spec.md §9), this is a plain
// index cursor over a preallocated slice — an equally valid
// representation per the design note, and the idiomatic Go one.
type OperandStack struct {
	values [stackCapacity]value.Value
	top    int
}

// NewOperandStack returns an empty stack ready to use.
func NewOperandStack() *OperandStack {
	return &OperandStack{}
}

// Push appends v to the top of the stack. It panics with a fail-fast
// diagnostic on overflow, matching the original's assert! behavior: a
// stack overflow here means the compiler emitted more pushes than the
// fixed capacity allows, an invariant violation rather than user error.
func (s *OperandStack) Push(v value.Value) {
	if s.top >= stackCapacity {
		panic(fmt.Sprintf("Stack overflow: maximum stack size of %d reached", stackCapacity))
	}
	s.values[s.top] = v
	s.top++
}

// Pop removes and returns the top value, or value.Empty and false if the
// stack is empty.
func (s *OperandStack) Pop() (value.Value, bool) {
	if s.top <= 0 {
		return value.Empty, false
	}
	s.top--
	v := s.values[s.top]
	s.values[s.top] = value.Empty
	return v, true
}

// Len reports the current number of values on the stack.
func (s *OperandStack) Len() int { return s.top }

// Reset empties the stack without releasing its backing array.
func (s *OperandStack) Reset() { s.top = 0 }

// Trace renders the stack's contents in push order, e.g. "[1, 2, 3]".
func (s *OperandStack) Trace() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < s.top; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.values[i].String())
	}
	b.WriteString("]")
	return b.String()
}
