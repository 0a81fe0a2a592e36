package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roxlang/rox/internal/bytecode"
	"github.com/roxlang/rox/internal/value"
	"github.com/roxlang/rox/internal/vm"
)

func TestRun_LoadThenReturnSurfacesTheConstant(t *testing.T) {
	c := bytecode.New()
	c.WriteConstant(value.Number(42), 1)
	c.Write(byte(bytecode.OpReturn), 1)

	m := vm.New(false, nil)
	result, out := m.Run(c)

	assert.Equal(t, vm.Ok, result)
	assert.True(t, value.Number(42).Equal(out))
}

func TestRun_NegateOnEmptyStackIsRuntimeError(t *testing.T) {
	c := bytecode.New()
	c.Write(byte(bytecode.OpNegate), 1)
	c.Write(byte(bytecode.OpReturn), 1)

	m := vm.New(false, nil)
	result, _ := m.Run(c)

	assert.Equal(t, vm.RuntimeError, result)
}

func TestRun_DivisionByZeroIsRuntimeError(t *testing.T) {
	c := bytecode.New()
	c.WriteConstant(value.Number(10), 1)
	c.WriteConstant(value.Number(0), 1)
	c.Write(byte(bytecode.OpDivide), 1)
	c.Write(byte(bytecode.OpReturn), 1)

	m := vm.New(false, nil)
	result, _ := m.Run(c)

	assert.Equal(t, vm.RuntimeError, result)
}

func TestRun_AdditionLeavesSumOnTop(t *testing.T) {
	c := bytecode.New()
	c.WriteConstant(value.Number(1), 1)
	c.WriteConstant(value.Number(2), 1)
	c.Write(byte(bytecode.OpAdd), 1)
	c.Write(byte(bytecode.OpReturn), 1)

	m := vm.New(false, nil)
	result, out := m.Run(c)

	require.Equal(t, vm.Ok, result)
	assert.True(t, value.Number(3).Equal(out))
}

func TestRun_SubtractionPreservesOperandOrder(t *testing.T) {
	c := bytecode.New()
	c.WriteConstant(value.Number(10), 1)
	c.WriteConstant(value.Number(4), 1)
	c.Write(byte(bytecode.OpSubtract), 1)
	c.Write(byte(bytecode.OpReturn), 1)

	m := vm.New(false, nil)
	_, out := m.Run(c)

	assert.True(t, value.Number(6).Equal(out))
}

func TestOperandStack_OverflowPanicsWithDiagnostic(t *testing.T) {
	s := vm.NewOperandStack()
	assert.Panics(t, func() {
		for i := 0; i < 4097; i++ {
			s.Push(value.Number(float64(i)))
		}
	})
}

func TestOperandStack_PushPopResetRoundTrip(t *testing.T) {
	s := vm.NewOperandStack()
	assert.Equal(t, 0, s.Len())

	s.Push(value.Number(1))
	s.Push(value.Literal("hi"))
	assert.Equal(t, 2, s.Len())

	v, ok := s.Pop()
	require.True(t, ok)
	assert.True(t, value.Literal("hi").Equal(v))

	s.Reset()
	assert.Equal(t, 0, s.Len())

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestOperandStack_Trace(t *testing.T) {
	s := vm.NewOperandStack()
	s.Push(value.Number(1))
	s.Push(value.Number(2))
	assert.Equal(t, "[1, 2]", s.Trace())
}
