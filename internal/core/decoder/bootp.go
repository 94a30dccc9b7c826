package decoder

import "firestige.xyz/plipbox/internal/core"

// IPv4 field offsets, relative to the start of the IPv4 header.
const (
	ipv4ProtocolOffset = 9
	ipv4DstOffset      = 16
	ipv4AddrLen        = 4
)

// IsBootpBroadcast reports whether the frame carries a UDP datagram to
// 255.255.255.255 with both ports in {67, 68}.
//
// The EtherType is not checked here; IsForMe only calls it for IPv4 frames.
// Short or malformed frames yield false.
func (v *FrameView) IsBootpBroadcast() bool {
	ok, err := v.inspectBootp()
	return err == nil && ok
}

// inspectBootp performs the BOOTP broadcast check and reports reads that run
// past the end of the frame as core.ErrOutOfBounds.
func (v *FrameView) inspectBootp() (bool, error) {
	raw := v.Raw()
	ip := core.EthernetHeaderLen

	proto, err := uint8At(raw, ip+ipv4ProtocolOffset)
	if err != nil {
		return false, err
	}
	if proto != core.IPProtocolUDP {
		return false, nil
	}

	dst, err := field(raw, ip+ipv4DstOffset, ipv4AddrLen)
	if err != nil {
		return false, err
	}
	if dst[0] != 0xff || dst[1] != 0xff || dst[2] != 0xff || dst[3] != 0xff {
		return false, nil
	}

	// IHL counts 32-bit words.
	verIHL, err := uint8At(raw, ip)
	if err != nil {
		return false, err
	}
	udp := ip + int(verIHL&0x0f)*4

	srcPort, err := uint16At(raw, udp)
	if err != nil {
		return false, err
	}
	dstPort, err := uint16At(raw, udp+2)
	if err != nil {
		return false, err
	}
	return isBootpPort(srcPort) && isBootpPort(dstPort), nil
}

func isBootpPort(port uint16) bool {
	return port == core.PortBootpServer || port == core.PortBootpClient
}
