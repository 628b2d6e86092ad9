package svm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"synvm.dev/synvm/internal/testutil"
)

func TestLogHooks(t *testing.T) {
	// push 7; pop r1; wmem 8 r1; halt
	img := []Word{2, 7, 3, r1, 16, 8, r1, 0, 0}

	type testCase struct {
		Level zapcore.Level
		Want  map[string]int
	}
	tcs := []testCase{
		{
			Level: zapcore.WarnLevel,
			Want:  map[string]int{},
		},
		{
			Level: zapcore.InfoLevel,
			Want:  map[string]int{"exec": 4, "register": 1},
		},
		{
			Level: zapcore.DebugLevel,
			Want: map[string]int{
				"exec":     4,
				"register": 1,
				"pc":       4,
				"push":     1,
				"pop":      1,
				"wmem":     1,
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.Level.String(), func(t *testing.T) {
			core, logs := observer.New(tc.Level)
			hooks := LogHooks(zap.New(core))
			vm := New(img, WithHooks(hooks))
			require.NoError(t, vm.Exec(testutil.Context(t)))

			got := map[string]int{}
			for _, e := range logs.All() {
				got[e.Message]++
			}
			require.Equal(t, tc.Want, got)
		})
	}
}

func TestLogHooksFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	vm := New([]Word{2, 7, 3, r1, 0}, WithHooks(LogHooks(zap.New(core))))
	require.NoError(t, vm.Exec(testutil.Context(t)))

	pops := logs.FilterMessage("pop").All()
	require.Len(t, pops, 1)
	fields := pops[0].ContextMap()
	require.EqualValues(t, 7, fields["value"])
	require.EqualValues(t, 0, fields["depth"])

	execs := logs.FilterMessage("exec").All()
	require.Len(t, execs, 3)
	require.Equal(t, "pop r1", execs[1].ContextMap()["ix"])

	regs := logs.FilterMessage("register").All()
	require.Len(t, regs, 1)
	require.EqualValues(t, 1, regs[0].ContextMap()["r"])
}

func TestHooksOrder(t *testing.T) {
	var events []string
	hooks := Hooks{
		PreExec:  func(ix Instruction) { events = append(events, "pre "+ix.String()) },
		PostExec: func(ix Instruction, next int) { events = append(events, "post "+ix.Op.String()) },
		RegisterWrite: func(reg int, x Word) {
			events = append(events, "reg")
		},
		StackPush: func(x Word, depth int) { events = append(events, "push") },
		StackPop:  func(x Word, depth int) { events = append(events, "pop") },
	}
	// call 3; halt; ret
	vm := New([]Word{17, 3, 0, 18}, WithHooks(hooks))
	require.NoError(t, vm.Exec(testutil.Context(t)))
	require.Equal(t, []string{
		"pre call 3", "push", "post call",
		"pre ret", "pop", "post ret",
		"pre halt", "post halt",
	}, events)
}
