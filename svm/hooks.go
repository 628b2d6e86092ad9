package svm

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Hooks observe the machine as it runs.
// Any hook may be nil, a nil hook costs a nil check.
type Hooks struct {
	// PreExec is called after an instruction is decoded, before its effect.
	PreExec func(ix Instruction)
	// PostExec is called after an instruction completes, with the new program counter.
	PostExec func(ix Instruction, next int)

	RegisterWrite func(reg int, x Word)
	// StackPush and StackPop are called with the value and the resulting depth.
	StackPush   func(x Word, depth int)
	StackPop    func(x Word, depth int)
	MemoryWrite func(addr int, x Word)
}

// LogHooks returns Hooks which log to l.
// Instructions and register writes are logged at info, stack and memory
// traffic at debug. Hooks for disabled levels are left nil.
func LogHooks(l *zap.Logger) Hooks {
	var h Hooks
	core := l.Core()
	if core.Enabled(zapcore.InfoLevel) {
		h.PreExec = func(ix Instruction) {
			l.Info("exec", zap.Int("pc", ix.Addr), zap.Stringer("ix", ix))
		}
		h.RegisterWrite = func(reg int, x Word) {
			l.Info("register", zap.Int("r", reg), zap.Uint16("value", x))
		}
	}
	if core.Enabled(zapcore.DebugLevel) {
		h.PostExec = func(ix Instruction, next int) {
			l.Debug("pc", zap.Int("from", ix.Addr), zap.Int("to", next))
		}
		h.StackPush = func(x Word, depth int) {
			l.Debug("push", zap.Uint16("value", x), zap.Int("depth", depth))
		}
		h.StackPop = func(x Word, depth int) {
			l.Debug("pop", zap.Uint16("value", x), zap.Int("depth", depth))
		}
		h.MemoryWrite = func(addr int, x Word) {
			l.Debug("wmem", zap.Int("addr", addr), zap.Uint16("value", x))
		}
	}
	return h
}
