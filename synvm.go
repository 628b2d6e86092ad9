// package synvm is the root of a virtual machine for a 15-bit word instruction set.
package synvm

import (
	"encoding/hex"

	"lukechampine.com/blake3"

	"synvm.dev/synvm/isa"
)

const (
	// WordBits is the number of significant bits in a Word.
	WordBits = isa.WordBits
	// Modulus is the value arithmetic wraps around at.
	Modulus = isa.Modulus
	// NumRegisters is the size of the register bank.
	NumRegisters = isa.NumRegisters

	// MaxImageWords is the largest program image that can be addressed.
	MaxImageWords = isa.Modulus
)

type Word = isa.Word

// ID identifies a program image by its content.
type ID [32]byte

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 bytes of the ID in hex.
func (id ID) Short() string {
	return hex.EncodeToString(id[:8])
}

// Hash calculates the ID of an encoded program image.
func Hash(data []byte) ID {
	return blake3.Sum256(data)
}
