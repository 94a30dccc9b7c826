package decoder

import "firestige.xyz/plipbox/internal/core"

// IsForMe reports whether a host owning own should accept the frame.
//
// Broadcast frames are accepted only for ARP and for BOOTP/DHCP broadcasts;
// unicast and multicast frames are accepted only on an exact address match.
func (v *FrameView) IsForMe(own core.HardwareAddress) bool {
	if v == nil {
		return false
	}
	if v.dst.IsBroadcast() {
		switch v.etherType {
		case core.EtherTypeARP:
			return true
		case core.EtherTypeIPv4:
			return v.IsBootpBroadcast()
		default:
			return false
		}
	}
	return v.dst == own
}

// IsMagicOnline reports whether the frame is the out-of-band "online" signal.
func (v *FrameView) IsMagicOnline() bool {
	return v.EtherType() == core.EtherTypeMagicOnline
}

// IsMagicOffline reports whether the frame is the out-of-band "offline" signal.
func (v *FrameView) IsMagicOffline() bool {
	return v.EtherType() == core.EtherTypeMagicOffline
}

// Classify folds the predicates into a single verdict. Magic signals take
// precedence over addressing.
func (v *FrameView) Classify(own core.HardwareAddress) core.Class {
	switch {
	case v.IsMagicOnline():
		return core.ClassMagicOnline
	case v.IsMagicOffline():
		return core.ClassMagicOffline
	case v.IsForMe(own):
		return core.ClassForMe
	default:
		return core.ClassNotForMe
	}
}
