package svm

import (
	"errors"

	"synvm.dev/synvm/isa"
)

// handler is the behavior of an opcode.
type handler struct {
	// exec is the effect on registers, memory, stack and I/O. nil does nothing.
	exec func(vm *VM, ix Instruction) error
	// jump computes the next program counter.
	// nil means continue with the next instruction in memory.
	jump func(vm *VM, ix Instruction) (int, error)
}

var handlers = [isa.NumOps]handler{
	isa.Halt: {exec: (*VM).execHalt},
	isa.Set:  {exec: (*VM).execSet},
	isa.Push: {exec: (*VM).execPush},
	isa.Pop:  {exec: (*VM).execPop},
	isa.Eq:   {exec: compare(func(b, c Word) bool { return b == c })},
	isa.Gt:   {exec: compare(func(b, c Word) bool { return b > c })},
	isa.Jmp:  {jump: (*VM).jumpJmp},
	isa.Jt:   {jump: jumpIf(true)},
	isa.Jf:   {jump: jumpIf(false)},
	isa.Add: {exec: compute(func(b, c Word) (Word, error) {
		return isa.Normalize(uint32(b) + uint32(c)), nil
	})},
	isa.Mult: {exec: compute(func(b, c Word) (Word, error) {
		return isa.Normalize(uint32(b) * uint32(c)), nil
	})},
	isa.Mod: {exec: compute(func(b, c Word) (Word, error) {
		if c == 0 {
			return 0, newError(DivideByZero, "%d mod 0", b)
		}
		return b % c, nil
	})},
	isa.And: {exec: compute(func(b, c Word) (Word, error) { return b & c, nil })},
	isa.Or:  {exec: compute(func(b, c Word) (Word, error) { return b | c, nil })},
	isa.Not: {exec: (*VM).execNot},
	isa.Rmem: {exec: (*VM).execRmem},
	isa.Wmem: {exec: (*VM).execWmem},
	isa.Call: {exec: (*VM).execCall, jump: (*VM).jumpJmp},
	isa.Ret:  {jump: (*VM).jumpRet},
	isa.Out:  {exec: (*VM).execOut},
	isa.In:   {exec: (*VM).execIn},
	isa.Noop: {},
}

// errInterrupted is returned by an effect which was abandoned because the
// context was done. The instruction has not executed.
var errInterrupted = errors.New("interrupted")

// resolve returns the value of an operand.
func (vm *VM) resolve(x Word) (Word, error) {
	if isa.IsLiteral(x) {
		return x, nil
	}
	if isa.IsRegister(x) {
		return vm.regs.Get(x)
	}
	return 0, newError(InvalidOperand, "%d", x)
}

// writeRegister stores x in the register id refers to.
func (vm *VM) writeRegister(id, x Word) error {
	if err := vm.regs.Set(id, x); err != nil {
		return err
	}
	if vm.hooks.RegisterWrite != nil {
		i, _ := isa.RegisterIndex(id)
		vm.hooks.RegisterWrite(i, x)
	}
	return nil
}

func (vm *VM) push(x Word) {
	vm.stack.Push(x)
	if vm.hooks.StackPush != nil {
		vm.hooks.StackPush(x, vm.stack.Len())
	}
}

func (vm *VM) pop() (Word, bool) {
	x, ok := vm.stack.Pop()
	if ok && vm.hooks.StackPop != nil {
		vm.hooks.StackPop(x, vm.stack.Len())
	}
	return x, ok
}

func (vm *VM) execHalt(Instruction) error {
	vm.halt()
	return nil
}

func (vm *VM) execSet(ix Instruction) error {
	b, err := vm.resolve(ix.args[1])
	if err != nil {
		return err
	}
	return vm.writeRegister(ix.args[0], b)
}

func (vm *VM) execPush(ix Instruction) error {
	a, err := vm.resolve(ix.args[0])
	if err != nil {
		return err
	}
	vm.push(a)
	return nil
}

func (vm *VM) execPop(ix Instruction) error {
	x, ok := vm.pop()
	if !ok {
		return newError(StackUnderflow, "pop into %s", formatOperand(ix.args[0]))
	}
	x, err := vm.resolve(x)
	if err != nil {
		return err
	}
	return vm.writeRegister(ix.args[0], x)
}

// compare builds the effect of a 3 operand comparison, which stores 1 or 0.
func compare(fn func(b, c Word) bool) func(*VM, Instruction) error {
	return compute(func(b, c Word) (Word, error) {
		if fn(b, c) {
			return 1, nil
		}
		return 0, nil
	})
}

// compute builds the effect of a 3 operand instruction: a = fn(b, c)
func compute(fn func(b, c Word) (Word, error)) func(*VM, Instruction) error {
	return func(vm *VM, ix Instruction) error {
		b, err := vm.resolve(ix.args[1])
		if err != nil {
			return err
		}
		c, err := vm.resolve(ix.args[2])
		if err != nil {
			return err
		}
		x, err := fn(b, c)
		if err != nil {
			return err
		}
		return vm.writeRegister(ix.args[0], x)
	}
}

func (vm *VM) execNot(ix Instruction) error {
	b, err := vm.resolve(ix.args[1])
	if err != nil {
		return err
	}
	return vm.writeRegister(ix.args[0], ^b&isa.MaxWord)
}

func (vm *VM) execRmem(ix Instruction) error {
	addr, err := vm.resolve(ix.args[1])
	if err != nil {
		return err
	}
	ws, err := vm.mem.Read(int(addr), 1)
	if err != nil {
		return err
	}
	return vm.writeRegister(ix.args[0], ws[0])
}

func (vm *VM) execWmem(ix Instruction) error {
	addr, err := vm.resolve(ix.args[0])
	if err != nil {
		return err
	}
	x, err := vm.resolve(ix.args[1])
	if err != nil {
		return err
	}
	if err := vm.mem.Write(int(addr), x); err != nil {
		return err
	}
	vm.invalidate(int(addr))
	if vm.hooks.MemoryWrite != nil {
		vm.hooks.MemoryWrite(int(addr), x)
	}
	return nil
}

func (vm *VM) execCall(ix Instruction) error {
	vm.push(Word(ix.Next()))
	return nil
}

func (vm *VM) execOut(ix Instruction) error {
	a, err := vm.resolve(ix.args[0])
	if err != nil {
		return err
	}
	if err := vm.console.WriteChar(a); err != nil {
		e := newError(IOError, "writing output")
		e.Err = err
		return e
	}
	return nil
}

func (vm *VM) execIn(ix Instruction) error {
	if !isa.IsRegister(ix.args[0]) {
		return newError(InvalidRegister, "%d", ix.args[0])
	}
	r, err := vm.console.ReadChar(vm.ctx)
	if err != nil {
		if ctxErr := vm.ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return errInterrupted
		}
		e := newError(IOError, "reading input")
		e.Err = err
		return e
	}
	if r < 0 || r > isa.MaxWord {
		return newError(IOError, "input character %U out of range", r)
	}
	return vm.writeRegister(ix.args[0], Word(r))
}

// jumpJmp jumps to the first operand
func (vm *VM) jumpJmp(ix Instruction) (int, error) {
	a, err := vm.resolve(ix.args[0])
	if err != nil {
		return 0, err
	}
	return int(a), nil
}

// jumpIf builds the advance rule of jt (when = true) and jf (when = false).
func jumpIf(when bool) func(*VM, Instruction) (int, error) {
	return func(vm *VM, ix Instruction) (int, error) {
		a, err := vm.resolve(ix.args[0])
		if err != nil {
			return 0, err
		}
		if (a != 0) != when {
			return ix.Next(), nil
		}
		b, err := vm.resolve(ix.args[1])
		if err != nil {
			return 0, err
		}
		return int(b), nil
	}
}

// jumpRet pops the return address. An empty stack halts the machine.
func (vm *VM) jumpRet(ix Instruction) (int, error) {
	x, ok := vm.pop()
	if !ok {
		vm.halt()
		return ix.Addr, nil
	}
	a, err := vm.resolve(x)
	if err != nil {
		return 0, err
	}
	return int(a), nil
}
