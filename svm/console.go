package svm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"synvm.dev/synvm/internal/ringbuf"
)

// TranscriptSize is the number of output characters a Console remembers.
const TranscriptSize = 4096

// ErrInvalidUTF8 is returned when input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// LineSource supplies input one whole line at a time.
// Lines include their trailing newline, except possibly the last one.
type LineSource interface {
	// ReadLine blocks until a line is available.
	// It returns io.EOF when there is no more input.
	ReadLine(ctx context.Context) (string, error)
}

// ReaderSource reads lines from an io.Reader.
// It cannot be interrupted while blocked in the underlying Read.
type ReaderSource struct {
	br *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{br: bufio.NewReader(r)}
}

func (s *ReaderSource) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := s.br.ReadString('\n')
	if len(line) > 0 {
		// a final line without a newline is delivered, the error comes on the next call.
		return line, nil
	}
	return "", err
}

// ChanSource reads lines from a channel, a closed channel is the end of input.
type ChanSource <-chan string

func (c ChanSource) ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-c:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Console is the character device behind the in and out instructions.
type Console struct {
	out io.Writer
	in  LineSource
	// pending is the rest of the current input line.
	pending string

	transcript ringbuf.RingBuf[rune]
	buf        [utf8.UTFMax]byte
}

func NewConsole(in LineSource, out io.Writer) *Console {
	return &Console{
		in:         in,
		out:        out,
		transcript: ringbuf.New[rune](TranscriptSize),
	}
}

// WriteChar writes the character with the given code, unbuffered.
func (c *Console) WriteChar(code Word) error {
	r := rune(code)
	n := utf8.EncodeRune(c.buf[:], r)
	c.transcript.PushBack(r)
	_, err := c.out.Write(c.buf[:n])
	return err
}

// ReadChar returns the next input character.
// If no characters are pending, it blocks until the source produces a line.
// A byte which is not part of a valid UTF-8 sequence is consumed and
// reported as ErrInvalidUTF8.
func (c *Console) ReadChar(ctx context.Context) (rune, error) {
	for len(c.pending) == 0 {
		line, err := c.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		c.pending = line
	}
	r, n := utf8.DecodeRuneInString(c.pending)
	if r == utf8.RuneError && n <= 1 {
		b := c.pending[0]
		c.pending = c.pending[1:]
		return 0, fmt.Errorf("%w: byte %#02x", ErrInvalidUTF8, b)
	}
	c.pending = c.pending[n:]
	return r, nil
}

// Pending returns the number of characters read from the source but not yet
// consumed by the machine.
func (c *Console) Pending() int {
	return utf8.RuneCountInString(c.pending)
}

// Transcript returns the most recent output, up to TranscriptSize characters.
func (c *Console) Transcript() string {
	return string(c.transcript.AppendTo(nil))
}
