// package svmimage encodes and decodes program images.
//
// An image is a flat sequence of unsigned 16-bit little-endian words, loaded
// verbatim into memory starting at address 0.
package svmimage

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"synvm.dev/synvm"
	"synvm.dev/synvm/isa"
)

const wordBytes = 2

var (
	ErrOddLength = errors.New("image length is not a whole number of words")
	ErrTooLarge  = errors.Errorf("image larger than %d words", synvm.MaxImageWords)
)

// Image is the initial contents of memory.
type Image []isa.Word

// Decode parses an encoded image.
func Decode(data []byte) (Image, error) {
	if len(data) > synvm.MaxImageWords*wordBytes {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes", len(data))
	}
	if len(data)%wordBytes != 0 {
		return nil, errors.Wrapf(ErrOddLength, "%d bytes", len(data))
	}
	img := make(Image, len(data)/wordBytes)
	for i := range img {
		img[i] = binary.LittleEndian.Uint16(data[i*wordBytes:])
	}
	return img, nil
}

// Read reads an entire image from r.
func Read(r io.Reader) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, synvm.MaxImageWords*wordBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	return Decode(data)
}

// Load loads an image from the file at p.
func Load(p string) (Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", p)
	}
	return img, nil
}

// Encode appends the encoded form of img to out.
func (img Image) Encode(out []byte) []byte {
	for _, w := range img {
		out = binary.LittleEndian.AppendUint16(out, w)
	}
	return out
}

// ID returns the content ID of the image.
func (img Image) ID() synvm.ID {
	return synvm.Hash(img.Encode(nil))
}

// Words returns the number of words in the image.
func (img Image) Words() int {
	return len(img)
}
