package svm

import (
	"strconv"
	"strings"

	"go.brendoncarroll.net/exp/slices2"

	"synvm.dev/synvm/isa"
)

// Instruction is a decoded instruction.
// Operands are kept raw, they are resolved when the instruction executes.
type Instruction struct {
	// Addr is the address of the opcode word
	Addr int
	Op   isa.Op
	args [isa.MaxLen - 1]Word
}

// NewInstruction builds an instruction at addr.
// The number of args must match the arity of op.
func NewInstruction(addr int, op isa.Op, args ...Word) (Instruction, error) {
	if !op.Valid() {
		return Instruction{}, newError(UnknownOpcode, "%d", uint16(op))
	}
	if len(args) != op.Arity() {
		return Instruction{}, newError(InvalidArguments, "%v expects %d arguments, got %d", op, op.Arity(), len(args))
	}
	ix := Instruction{Addr: addr, Op: op}
	copy(ix.args[:], args)
	return ix, nil
}

// Arg returns the i-th raw operand
func (ix Instruction) Arg(i int) Word {
	if i >= ix.Op.Arity() {
		panic(i)
	}
	return ix.args[i]
}

// Args returns the raw operands
func (ix Instruction) Args() []Word {
	return append([]Word{}, ix.args[:ix.Op.Arity()]...)
}

// Len is the number of words the instruction occupies.
func (ix Instruction) Len() int {
	return ix.Op.Len()
}

// Next is the address of the instruction that follows in memory.
func (ix Instruction) Next() int {
	return ix.Addr + ix.Len()
}

func (ix Instruction) String() string {
	parts := []string{ix.Op.String()}
	parts = append(parts, slices2.Map(ix.args[:ix.Op.Arity()], formatOperand)...)
	return strings.Join(parts, " ")
}

func formatOperand(x Word) string {
	if i, ok := isa.RegisterIndex(x); ok {
		return "r" + strconv.Itoa(i)
	}
	if isa.IsLiteral(x) {
		return strconv.Itoa(int(x))
	}
	return "!" + strconv.Itoa(int(x))
}
