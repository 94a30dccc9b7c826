package decoder

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/plipbox/internal/core"
)

// Ethernet header layout.
const (
	dstOffset       = 0
	srcOffset       = 6
	etherTypeOffset = 12
)

// FrameView is a decoded, immutable view over one Ethernet frame.
//
// The view borrows the buffer passed to Decode; the caller must not modify
// that buffer while the view is in use.
type FrameView struct {
	raw       []byte
	dst       core.HardwareAddress
	src       core.HardwareAddress
	etherType uint16
}

// Decode decodes the fixed Ethernet header of data.
// It fails with core.ErrTruncatedFrame when data is shorter than 14 bytes.
func Decode(data []byte) (*FrameView, error) {
	if len(data) < core.EthernetHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need %d", core.ErrTruncatedFrame, len(data), core.EthernetHeaderLen)
	}

	v := &FrameView{raw: data}
	copy(v.dst[:], data[dstOffset:srcOffset])
	copy(v.src[:], data[srcOffset:etherTypeOffset])
	v.etherType = binary.BigEndian.Uint16(data[etherTypeOffset:core.EthernetHeaderLen])
	return v, nil
}

// Raw returns the buffer the view was decoded from.
func (v *FrameView) Raw() []byte {
	if v == nil {
		return nil
	}
	return v.raw
}

// Destination returns the destination hardware address.
func (v *FrameView) Destination() core.HardwareAddress {
	if v == nil {
		return core.HardwareAddress{}
	}
	return v.dst
}

// Source returns the source hardware address.
func (v *FrameView) Source() core.HardwareAddress {
	if v == nil {
		return core.HardwareAddress{}
	}
	return v.src
}

// EtherType returns the protocol type field.
func (v *FrameView) EtherType() uint16 {
	if v == nil {
		return 0
	}
	return v.etherType
}

// PayloadSize returns the number of bytes following the Ethernet header.
func (v *FrameView) PayloadSize() int {
	if v == nil {
		return 0
	}
	return len(v.raw) - core.EthernetHeaderLen
}

// String renders the view as "[SSSS:0xPPPP,src->dst]".
func (v *FrameView) String() string {
	size := v.PayloadSize()
	if size < 0 {
		size = 0
	}
	return fmt.Sprintf("[%04d:0x%04x,%s->%s]", size, v.EtherType(), v.Source(), v.Destination())
}
