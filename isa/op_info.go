package isa

// Info is information about an opcode
type Info struct {
	Mnemonic string `json:"mnemonic"`
	// Arity is the number of operand words following the opcode.
	Arity int `json:"arity"`
	// Jumps is true if the opcode replaces the default program counter advance.
	Jumps bool `json:"jumps"`
}

func (p Op) Info() Info {
	return infos[p]
}

// Arity returns the number of operands an opcode takes.
func (p Op) Arity() int {
	return infos[p].Arity
}

// Len returns the number of words an instruction with this opcode occupies.
func (p Op) Len() int {
	return 1 + p.Arity()
}

// Jumps returns true if the instruction computes its own next program counter.
func (p Op) Jumps() bool {
	return infos[p].Jumps
}

var infos = [NumOps]Info{
	Halt: {"halt", 0, false},
	Set:  {"set", 2, false},
	Push: {"push", 1, false},
	Pop:  {"pop", 1, false},
	Eq:   {"eq", 3, false},
	Gt:   {"gt", 3, false},
	Jmp:  {"jmp", 1, true},
	Jt:   {"jt", 2, true},
	Jf:   {"jf", 2, true},
	Add:  {"add", 3, false},
	Mult: {"mult", 3, false},
	Mod:  {"mod", 3, false},
	And:  {"and", 3, false},
	Or:   {"or", 3, false},
	Not:  {"not", 2, false},
	Rmem: {"rmem", 2, false},
	Wmem: {"wmem", 2, false},
	Call: {"call", 1, true},
	Ret:  {"ret", 0, true},
	Out:  {"out", 1, false},
	In:   {"in", 1, false},
	Noop: {"noop", 0, false},
}

// MaxLen is the length in words of the longest instruction.
const MaxLen = 4
