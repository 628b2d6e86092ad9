// package isa defines the instruction set: words, operands and opcodes.
package isa

import "strconv"

// Op is an opcode
type Op uint16

const (
	// Halt stops execution
	Halt Op = iota
	// Set a b: set register a to the value of b
	Set
	// Push a: push a onto the stack
	Push
	// Pop a: remove the top of the stack and write it into register a.
	// An empty stack is an error.
	Pop
	// Eq a b c: set a to 1 if b == c, 0 otherwise
	Eq
	// Gt a b c: set a to 1 if b > c, 0 otherwise
	Gt
	// Jmp a: jump to a
	Jmp
	// Jt a b: if a is nonzero, jump to b
	Jt
	// Jf a b: if a is zero, jump to b
	Jf
	// Add a b c: a = (b + c) mod 32768
	Add
	// Mult a b c: a = (b * c) mod 32768
	Mult
	// Mod a b c: a = b mod c
	Mod
	// And a b c: a = b & c
	And
	// Or a b c: a = b | c
	Or
	// Not a b: a = 15-bit complement of b
	Not
	// Rmem a b: read memory at address b into register a
	Rmem
	// Wmem a b: write the value b into memory at address a
	Wmem
	// Call a: push the address of the next instruction and jump to a
	Call
	// Ret: pop the stack and jump to it. An empty stack halts.
	Ret
	// Out a: write the character with code a
	Out
	// In a: read a character and write its code into register a
	In
	// Noop does nothing
	Noop

	// NumOps is the number of opcodes in the instruction set
	NumOps = iota
)

// Valid returns true if p is in the instruction set.
func (p Op) Valid() bool {
	return p < NumOps
}

func (p Op) String() string {
	if !p.Valid() {
		return "op(" + strconv.Itoa(int(p)) + ")"
	}
	return infos[p].Mnemonic
}

// All returns every opcode in the instruction set in numeric order.
func All() []Op {
	ret := make([]Op, NumOps)
	for i := range ret {
		ret[i] = Op(i)
	}
	return ret
}
