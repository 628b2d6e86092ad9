package svm

import (
	"errors"
	"fmt"

	"synvm.dev/synvm/isa"
)

// Kind describes the reason the machine faulted.
type Kind int

const (
	// InvalidOperand: an operand outside the literal and register ranges.
	InvalidOperand Kind = iota + 1
	// InvalidRegister: a destination that is not a register reference.
	InvalidRegister
	// InvalidArguments: an instruction built with the wrong number of operands.
	InvalidArguments
	// InvalidMemoryAccess: a read of a bad word count, or an access outside memory.
	InvalidMemoryAccess
	// StackUnderflow: pop on an empty stack.
	StackUnderflow
	// UnknownOpcode: an opcode outside the instruction set.
	UnknownOpcode
	// DivideByZero: mod with a zero divisor.
	DivideByZero
	// IOError: the input or output stream failed.
	IOError
)

var kindStrings = [...]string{
	InvalidOperand:      "invalid operand",
	InvalidRegister:     "invalid register",
	InvalidArguments:    "invalid arguments",
	InvalidMemoryAccess: "invalid memory access",
	StackUnderflow:      "stack underflow",
	UnknownOpcode:       "unknown opcode",
	DivideByZero:        "divide by zero",
	IOError:             "I/O error",
}

func (k Kind) Error() string {
	if k <= 0 || int(k) >= len(kindStrings) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindStrings[k]
}

// Error describes a fault and where it happened.
type Error struct {
	Kind Kind
	// PC is the address of the faulting instruction, or -1 if the fault
	// happened outside of the execution loop.
	PC int
	// Op is the opcode of the faulting instruction, valid if HasOp is set.
	Op    isa.Op
	HasOp bool
	// Detail names the offending operand, register, address or count.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		PC:     -1,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	msg := "svm: " + e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.PC >= 0 {
		msg += fmt.Sprintf(" at %d", e.PC)
		if e.HasOp {
			msg += fmt.Sprintf(" (%v)", e.Op)
		}
	}
	return msg
}

// Unwrap allows matching the Kind and the cause with errors.Is
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindOf returns the Kind of a fault, if err is one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}

// ErrHalted is returned when stepping a machine which has already stopped.
var ErrHalted = errors.New("svm: machine is halted")
