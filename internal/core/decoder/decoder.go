// Package decoder decodes raw Ethernet frames into read-only views and
// classifies them for delivery.
//
// All reads past the fixed 14-byte header go through the bounds-checked
// accessors below; frames are untrusted input and must never cause a panic.
package decoder

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/plipbox/internal/core"
)

// field returns data[off:off+n] capped at its own length, or ErrOutOfBounds.
func field(data []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(data) || len(data)-off < n {
		return nil, fmt.Errorf("%w: [%d:%d) of %d bytes", core.ErrOutOfBounds, off, off+n, len(data))
	}
	return data[off : off+n : off+n], nil
}

func uint8At(data []byte, off int) (uint8, error) {
	b, err := field(data, off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func uint16At(data []byte, off int) (uint16, error) {
	b, err := field(data, off, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}
