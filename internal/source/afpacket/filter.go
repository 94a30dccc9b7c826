package afpacket

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/net/bpf"

	"firestige.xyz/plipbox/internal/core"
)

// Config configures a live AF_PACKET source.
type Config struct {
	Interface    string
	SnapLen      int
	BufferSizeMB int
	Timeout      time.Duration
	// Filter is attached to the socket when non-empty, see KernelFilter.
	Filter []bpf.RawInstruction
}

// KernelFilter builds a socket filter that keeps only frames worth
// classifying: magic signals, broadcasts, and frames addressed to own.
// BOOTP inspection of IPv4 broadcasts still happens in user space.
func KernelFilter(own core.HardwareAddress, snapLen int) ([]bpf.RawInstruction, error) {
	if snapLen < core.EthernetHeaderLen {
		return nil, fmt.Errorf("kernel filter: snap length %d below header length", snapLen)
	}

	ownHi := binary.BigEndian.Uint32(own[0:4])
	ownLo := uint32(binary.BigEndian.Uint16(own[4:6]))

	// Jump offsets are relative to the next instruction; accept is #11, drop is #12.
	prog := []bpf.Instruction{
		/* 0 */ bpf.LoadAbsolute{Off: 12, Size: 2},
		/* 1 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: core.EtherTypeMagicOnline, SkipTrue: 9},
		/* 2 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: core.EtherTypeMagicOffline, SkipTrue: 8},
		/* 3 */ bpf.LoadAbsolute{Off: 0, Size: 4},
		/* 4 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0xffffffff, SkipFalse: 2},
		/* 5 */ bpf.LoadAbsolute{Off: 4, Size: 2},
		/* 6 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0xffff, SkipTrue: 4},
		/* 7 */ bpf.LoadAbsolute{Off: 0, Size: 4},
		/* 8 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: ownHi, SkipFalse: 3},
		/* 9 */ bpf.LoadAbsolute{Off: 4, Size: 2},
		/* 10 */ bpf.JumpIf{Cond: bpf.JumpEqual, Val: ownLo, SkipFalse: 1},
		/* 11 */ bpf.RetConstant{Val: uint32(snapLen)},
		/* 12 */ bpf.RetConstant{Val: 0},
	}

	raw, err := bpf.Assemble(prog)
	if err != nil {
		return nil, fmt.Errorf("kernel filter: %w", err)
	}
	return raw, nil
}
