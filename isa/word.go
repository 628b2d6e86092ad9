package isa

const (
	// WordBits is the number of significant bits in a value.
	WordBits = 15
	// Modulus is 2^WordBits, arithmetic wraps around here.
	Modulus = 1 << WordBits
	// MaxWord is the largest literal value.
	MaxWord = Modulus - 1

	// NumRegisters is the number of general purpose registers.
	NumRegisters = 8
	// RegisterBase is the operand that refers to register 0.
	RegisterBase = Modulus
	// MaxRegister is the operand that refers to the last register.
	MaxRegister = RegisterBase + NumRegisters - 1
)

// Word is a 16 bit cell from the instruction stream.
// Values are always in [0, MaxWord]; the range above holds register references.
type Word = uint16

// Normalize reduces x into the value space.
func Normalize(x uint32) Word {
	return Word(x % Modulus)
}

// IsLiteral returns true if the operand denotes itself.
func IsLiteral(x Word) bool {
	return x <= MaxWord
}

// IsRegister returns true if the operand refers to a register.
func IsRegister(x Word) bool {
	return x >= RegisterBase && x <= MaxRegister
}

// RegisterIndex returns the index of the register x refers to.
// It returns false if x is not a register reference.
func RegisterIndex(x Word) (int, bool) {
	if !IsRegister(x) {
		return 0, false
	}
	return int(x - RegisterBase), true
}

// Reg returns the operand referring to register i.
func Reg(i int) Word {
	if i < 0 || i >= NumRegisters {
		panic(i)
	}
	return Word(RegisterBase + i)
}
