package svm

import "synvm.dev/synvm/isa"

// Registers is the register bank. Registers are addressed by register
// references, the operands in [isa.RegisterBase, isa.MaxRegister].
type Registers [isa.NumRegisters]Word

// Get returns the value of the register id refers to.
func (r *Registers) Get(id Word) (Word, error) {
	i, ok := isa.RegisterIndex(id)
	if !ok {
		return 0, newError(InvalidRegister, "%d", id)
	}
	return r[i], nil
}

// Set stores x in the register id refers to.
func (r *Registers) Set(id Word, x Word) error {
	i, ok := isa.RegisterIndex(id)
	if !ok {
		return newError(InvalidRegister, "%d", id)
	}
	r[i] = x
	return nil
}
