// Package core defines core types with zero external dependencies.
package core

import (
	"fmt"
	"net"
	"strings"
)

// Wire-format constants used by frame classification.
const (
	EthernetHeaderLen = 14
	HardwareAddrLen   = 6

	EtherTypeIPv4         = 0x0800
	EtherTypeARP          = 0x0806
	EtherTypeMagicOnline  = 0xFFFF // out-of-band "online" signal, not an IEEE type
	EtherTypeMagicOffline = 0xFFFE // out-of-band "offline" signal

	IPProtocolUDP   = 17
	PortBootpServer = 67
	PortBootpClient = 68
)

// HardwareAddress is a 6-byte Ethernet address in transmission order.
type HardwareAddress [HardwareAddrLen]byte

// Broadcast is the all-ones Ethernet address.
var Broadcast = HardwareAddress{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseHardwareAddress parses "aa:bb:cc:dd:ee:ff" (or '-' separated) into an address.
func ParseHardwareAddress(s string) (HardwareAddress, error) {
	var addr HardwareAddress
	mac, err := net.ParseMAC(strings.TrimSpace(s))
	if err != nil {
		return addr, fmt.Errorf("%w: %q", ErrInvalidHardwareAddress, s)
	}
	if len(mac) != HardwareAddrLen {
		return addr, fmt.Errorf("%w: %q has %d bytes", ErrInvalidHardwareAddress, s, len(mac))
	}
	copy(addr[:], mac)
	return addr, nil
}

// IsBroadcast reports whether a is the all-ones address.
func (a HardwareAddress) IsBroadcast() bool {
	return a == Broadcast
}

func (a HardwareAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// MarshalText implements encoding.TextMarshaler.
func (a HardwareAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *HardwareAddress) UnmarshalText(text []byte) error {
	parsed, err := ParseHardwareAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Class is the verdict reached for one frame.
type Class uint8

const (
	ClassNotForMe Class = iota
	ClassForMe
	ClassMagicOnline
	ClassMagicOffline
)

func (c Class) String() string {
	switch c {
	case ClassForMe:
		return "for-me"
	case ClassMagicOnline:
		return "magic-online"
	case ClassMagicOffline:
		return "magic-offline"
	default:
		return "not-for-me"
	}
}
