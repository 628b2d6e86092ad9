package isa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	type testCase struct {
		Op       Op
		Mnemonic string
		Arity    int
		Jumps    bool
	}
	tcs := []testCase{
		{Halt, "halt", 0, false},
		{Set, "set", 2, false},
		{Push, "push", 1, false},
		{Pop, "pop", 1, false},
		{Eq, "eq", 3, false},
		{Gt, "gt", 3, false},
		{Jmp, "jmp", 1, true},
		{Jt, "jt", 2, true},
		{Jf, "jf", 2, true},
		{Add, "add", 3, false},
		{Mult, "mult", 3, false},
		{Mod, "mod", 3, false},
		{And, "and", 3, false},
		{Or, "or", 3, false},
		{Not, "not", 2, false},
		{Rmem, "rmem", 2, false},
		{Wmem, "wmem", 2, false},
		{Call, "call", 1, true},
		{Ret, "ret", 0, true},
		{Out, "out", 1, false},
		{In, "in", 1, false},
		{Noop, "noop", 0, false},
	}
	require.Len(t, tcs, NumOps)
	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%d/%s", i, tc.Mnemonic), func(t *testing.T) {
			require.Equal(t, Op(i), tc.Op)
			require.True(t, tc.Op.Valid())
			require.Equal(t, tc.Mnemonic, tc.Op.String())
			require.Equal(t, tc.Arity, tc.Op.Arity())
			require.Equal(t, tc.Arity+1, tc.Op.Len())
			require.LessOrEqual(t, tc.Op.Len(), MaxLen)
			require.Equal(t, tc.Jumps, tc.Op.Jumps())
		})
	}
}

func TestInvalidOp(t *testing.T) {
	for _, p := range []Op{NumOps, 22, 100, 0xffff} {
		require.False(t, p.Valid())
		require.Equal(t, fmt.Sprintf("op(%d)", uint16(p)), p.String())
	}
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, NumOps)
	for i, p := range all {
		require.Equal(t, Op(i), p)
	}
}

func TestOperands(t *testing.T) {
	require.True(t, IsLiteral(0))
	require.True(t, IsLiteral(32767))
	require.False(t, IsLiteral(32768))

	require.False(t, IsRegister(32767))
	for i := 0; i < NumRegisters; i++ {
		x := Reg(i)
		require.True(t, IsRegister(x))
		idx, ok := RegisterIndex(x)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
	require.False(t, IsRegister(32776))
	require.False(t, IsRegister(0xffff))
	_, ok := RegisterIndex(32776)
	require.False(t, ok)

	require.Panics(t, func() { Reg(NumRegisters) })
}

func TestNormalize(t *testing.T) {
	require.Equal(t, Word(0), Normalize(32768))
	require.Equal(t, Word(32767), Normalize(32767))
	require.Equal(t, Word(1), Normalize(32767+2))
	require.Equal(t, Word((32767*32767)%32768), Normalize(32767*32767))
}
