package svm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"synvm.dev/synvm/internal/testutil"
)

func TestReaderSource(t *testing.T) {
	ctx := testutil.Context(t)
	src := NewReaderSource(strings.NewReader("look\n\ngo north"))
	var lines []string
	for {
		line, err := src.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	require.Equal(t, []string{"look\n", "\n", "go north"}, lines)
}

func TestConsoleLineBuffered(t *testing.T) {
	ctx := testutil.Context(t)
	lines := make(chan string, 2)
	lines <- "ab\n"
	lines <- "cd\n"
	close(lines)
	c := NewConsole(ChanSource(lines), io.Discard)

	r, err := c.ReadChar(ctx)
	require.NoError(t, err)
	require.Equal(t, 'a', r)
	// the rest of the line is held, the next line is not read yet
	require.Equal(t, 2, c.Pending())
	require.Len(t, lines, 1)

	var got []rune
	for {
		r, err := c.ReadChar(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, r)
	}
	require.Equal(t, "b\ncd\n", string(got))
	require.Equal(t, 0, c.Pending())
}

func TestConsoleEmptyLines(t *testing.T) {
	ctx := testutil.Context(t)
	lines := make(chan string, 2)
	lines <- ""
	lines <- "x"
	c := NewConsole(ChanSource(lines), io.Discard)
	r, err := c.ReadChar(ctx)
	require.NoError(t, err)
	require.Equal(t, 'x', r)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestConsoleWrite(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(ChanSource(nil), &out)
	for _, r := range "héllo\n" {
		require.NoError(t, c.WriteChar(Word(r)))
	}
	require.Equal(t, "héllo\n", out.String())
	require.Equal(t, "héllo\n", c.Transcript())

	c = NewConsole(ChanSource(nil), failWriter{})
	require.ErrorIs(t, c.WriteChar('x'), io.ErrClosedPipe)

	vm := New([]Word{19, 65, 0}, WithOutput(failWriter{}))
	err := vm.Exec(testutil.Context(t))
	require.ErrorIs(t, err, IOError)
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestTranscript(t *testing.T) {
	c := NewConsole(ChanSource(nil), io.Discard)
	for i := 0; i < TranscriptSize+10; i++ {
		require.NoError(t, c.WriteChar(Word('a'+i%26)))
	}
	tr := c.Transcript()
	require.Len(t, tr, TranscriptSize)
	// the oldest characters have been dropped
	require.Equal(t, byte('a'+10%26), tr[0])
	require.Equal(t, byte('a'+(TranscriptSize+9)%26), tr[len(tr)-1])
}

func TestInputOutOfRange(t *testing.T) {
	vm := New([]Word{20, r0, 0},
		WithInput(NewReaderSource(strings.NewReader("\U0001F600\n"))),
	)
	err := vm.Exec(testutil.Context(t))
	require.ErrorIs(t, err, IOError)
}

func TestConsoleInvalidUTF8(t *testing.T) {
	ctx := testutil.Context(t)
	c := NewConsole(NewReaderSource(strings.NewReader("\xffa\xe2\x98\n")), io.Discard)
	_, err := c.ReadChar(ctx)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.Equal(t, 4, c.Pending())

	r, err := c.ReadChar(ctx)
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	// a truncated sequence is reported one byte at a time
	_, err = c.ReadChar(ctx)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	_, err = c.ReadChar(ctx)
	require.ErrorIs(t, err, ErrInvalidUTF8)

	r, err = c.ReadChar(ctx)
	require.NoError(t, err)
	require.Equal(t, '\n', r)

	vm := New([]Word{20, r0, 0},
		WithInput(NewReaderSource(strings.NewReader("\xff\n"))),
	)
	err = vm.Exec(ctx)
	require.ErrorIs(t, err, IOError)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.NotContains(t, err.Error(), "U+FFFD")
}
