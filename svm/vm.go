// package svm implements the virtual machine: registers, memory, stack, and the
// fetch-decode-execute loop.
package svm

import (
	"context"
	"io"
	"math"
	"strings"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"synvm.dev/synvm/isa"
)

type Word = isa.Word

// DefaultDecodeCacheSize is the number of decoded instructions cached by default.
const DefaultDecodeCacheSize = 512

type VM struct {
	mem   Memory
	regs  Registers
	stack Stack
	pc    int

	halted      bool
	// interrupted is set when the instruction at pc was abandoned waiting for input.
	interrupted bool
	err         error
	steps       uint64
	counts      [isa.NumOps]uint64
	ctx         context.Context

	console     *Console
	hooks       Hooks
	decodeCache *simplelru.LRU[int, Instruction]
}

type config struct {
	in        LineSource
	out       io.Writer
	hooks     Hooks
	cacheSize int
}

// Option configures a VM
type Option func(*config)

// WithInput sets where the in instruction reads lines from.
// The default source is empty, reading from it is an error.
func WithInput(src LineSource) Option {
	return func(c *config) { c.in = src }
}

// WithOutput sets where the out instruction writes characters.
// The default discards them.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithHooks installs observability hooks.
func WithHooks(h Hooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithDecodeCache sets the number of decoded instructions to cache.
// 0 disables the cache.
func WithDecodeCache(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

// New creates a VM with memory holding a copy of img.
// Execution begins at address 0.
func New(img []Word, opts ...Option) *VM {
	cfg := config{
		in:        NewReaderSource(strings.NewReader("")),
		out:       io.Discard,
		cacheSize: DefaultDecodeCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	vm := &VM{
		mem:     NewMemory(img),
		console: NewConsole(cfg.in, cfg.out),
		hooks:   cfg.hooks,
	}
	if cfg.cacheSize > 0 {
		cache, err := simplelru.NewLRU[int, Instruction](cfg.cacheSize, nil)
		if err != nil {
			panic(err)
		}
		vm.decodeCache = cache
	}
	return vm
}

// Run executes the VM for a maximum of maxSteps.
// The number of instructions completed is returned.
// Run returns early if the machine halts, faults, or ctx is done.
func (vm *VM) Run(ctx context.Context, maxSteps uint64) (steps uint64) {
	vm.ctx = ctx
	defer func() { vm.ctx = nil }()
	defer func() { vm.steps += steps }()

	done := ctx.Done()
	for i := uint64(0); i < maxSteps; i++ {
		if !vm.isAlive() {
			return i
		}
		select {
		case <-done:
			return i
		default:
		}
		if !vm.step() {
			return i
		}
	}
	return maxSteps
}

// Exec runs the VM until it halts.
// It returns the fault that stopped the machine, or ctx.Err() if ctx was
// done first, in which case the machine can be resumed.
func (vm *VM) Exec(ctx context.Context) error {
	for vm.isAlive() {
		vm.Run(ctx, math.MaxUint64)
		if err := ctx.Err(); err != nil && vm.isAlive() {
			return err
		}
	}
	return vm.err
}

// Step executes a single instruction.
func (vm *VM) Step(ctx context.Context) error {
	if !vm.isAlive() {
		return ErrHalted
	}
	if vm.Run(ctx, 1) == 0 && vm.isAlive() {
		return ctx.Err()
	}
	return vm.err
}

func (vm *VM) isAlive() bool {
	return !vm.halted
}

// Halted returns true once the machine has stopped, cleanly or by faulting.
func (vm *VM) Halted() bool {
	return vm.halted
}

// Err returns the fault that stopped the machine, if any.
func (vm *VM) Err() error {
	return vm.err
}

// Steps returns the number of instructions completed over the life of the VM.
// A faulting or interrupted instruction is not counted.
func (vm *VM) Steps() uint64 {
	return vm.steps
}

// OpCounts returns the number of times each opcode has executed.
// Opcodes which have not executed are omitted.
func (vm *VM) OpCounts() map[isa.Op]uint64 {
	ret := make(map[isa.Op]uint64)
	for op, n := range vm.counts {
		if n > 0 {
			ret[isa.Op(op)] = n
		}
	}
	return ret
}

// PC returns the address of the next instruction to execute
func (vm *VM) PC() int {
	return vm.pc
}

// Register returns the value of register i.
func (vm *VM) Register(i int) Word {
	return vm.regs[i]
}

func (vm *VM) Registers() Registers {
	return vm.regs
}

// DumpStack appends the stack, bottom first, to out.
func (vm *VM) DumpStack(out []Word) []Word {
	return vm.stack.AppendTo(out)
}

// Peek returns the word at addr.
func (vm *VM) Peek(addr int) (Word, error) {
	ws, err := vm.mem.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return ws[0], nil
}

// DumpMemory returns a copy of memory.
func (vm *VM) DumpMemory() []Word {
	return vm.mem.Snapshot()
}

// MemorySize returns the number of addressable words.
func (vm *VM) MemorySize() int {
	return vm.mem.Len()
}

func (vm *VM) Console() *Console {
	return vm.console
}

func (vm *VM) halt() {
	vm.halted = true
}

// fail stops the machine with err.
func (vm *VM) fail(err error) {
	vm.halted = true
	vm.err = err
}

// step executes the instruction at pc.
// It returns true if the instruction completed, and false if it faulted or
// was interrupted.
// An interrupted instruction has no effect, it runs again when the VM resumes.
func (vm *VM) step() bool {
	ix, err := vm.fetch()
	if err != nil {
		vm.fail(annotate(err, vm.pc, nil))
		return false
	}
	// a resumed instruction has already been reported.
	if vm.hooks.PreExec != nil && !vm.interrupted {
		vm.hooks.PreExec(ix)
	}
	vm.interrupted = false
	h := &handlers[ix.Op]
	if h.exec != nil {
		if err := h.exec(vm, ix); err != nil {
			if err == errInterrupted {
				vm.interrupted = true
				return false
			}
			vm.fail(annotate(err, ix.Addr, &ix.Op))
			return false
		}
	}
	next := ix.Next()
	if h.jump != nil {
		if next, err = h.jump(vm, ix); err != nil {
			vm.fail(annotate(err, ix.Addr, &ix.Op))
			return false
		}
	}
	vm.pc = next
	vm.counts[ix.Op]++
	if vm.hooks.PostExec != nil {
		vm.hooks.PostExec(ix, next)
	}
	return true
}

// fetch decodes the instruction at pc
func (vm *VM) fetch() (Instruction, error) {
	if vm.decodeCache != nil {
		if ix, ok := vm.decodeCache.Get(vm.pc); ok {
			return ix, nil
		}
	}
	ws, err := vm.mem.Read(vm.pc, 1)
	if err != nil {
		return Instruction{}, err
	}
	op := isa.Op(ws[0])
	if !op.Valid() {
		return Instruction{}, newError(UnknownOpcode, "%d", ws[0])
	}
	var args []Word
	if n := op.Arity(); n > 0 {
		if args, err = vm.mem.Read(vm.pc+1, n); err != nil {
			return Instruction{}, err
		}
	}
	ix, err := NewInstruction(vm.pc, op, args...)
	if err != nil {
		return Instruction{}, err
	}
	if vm.decodeCache != nil {
		vm.decodeCache.Add(vm.pc, ix)
	}
	return ix, nil
}

// invalidate drops cached instructions which span addr
func (vm *VM) invalidate(addr int) {
	if vm.decodeCache == nil {
		return
	}
	for a := addr - (isa.MaxLen - 1); a <= addr; a++ {
		vm.decodeCache.Remove(a)
	}
}

func annotate(err error, pc int, op *isa.Op) error {
	e, ok := err.(*Error)
	if !ok || e.PC >= 0 {
		return err
	}
	e.PC = pc
	if op != nil {
		e.Op, e.HasOp = *op, true
	}
	return e
}
