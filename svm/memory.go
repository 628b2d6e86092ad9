package svm

import "synvm.dev/synvm/isa"

// Memory is word addressable, its size is fixed when it is created.
type Memory struct {
	ws []Word
}

// NewMemory creates a Memory holding a copy of img.
func NewMemory(img []Word) Memory {
	return Memory{ws: append([]Word{}, img...)}
}

func (m *Memory) Len() int {
	return len(m.ws)
}

// Read returns count consecutive words starting at addr.
// The returned slice aliases memory and is only valid until the next Write.
func (m *Memory) Read(addr, count int) ([]Word, error) {
	if count <= 0 || count > isa.Modulus {
		return nil, newError(InvalidMemoryAccess, "read of %d words at %d", count, addr)
	}
	if addr < 0 || addr+count > len(m.ws) {
		return nil, newError(InvalidMemoryAccess, "read of %d words at %d, memory is %d words", count, addr, len(m.ws))
	}
	return m.ws[addr : addr+count : addr+count], nil
}

// Write replaces the word at addr.
func (m *Memory) Write(addr int, x Word) error {
	if addr < 0 || addr >= len(m.ws) {
		return newError(InvalidMemoryAccess, "write at %d, memory is %d words", addr, len(m.ws))
	}
	m.ws[addr] = x
	return nil
}

// Snapshot returns a copy of the contents of memory.
func (m *Memory) Snapshot() []Word {
	return append([]Word{}, m.ws...)
}
