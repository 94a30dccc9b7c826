package afpacket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/bpf"

	"firestige.xyz/plipbox/internal/core"
)

var filterOwn = core.HardwareAddress{0x1a, 0x11, 0xaf, 0xa0, 0x47, 0x11}

func filterVM(t *testing.T, own core.HardwareAddress) *bpf.VM {
	t.Helper()
	raw, err := KernelFilter(own, 1514)
	require.NoError(t, err)

	insts, ok := bpf.Disassemble(raw)
	require.True(t, ok, "filter should disassemble completely")

	vm, err := bpf.NewVM(insts)
	require.NoError(t, err)
	return vm
}

func ethFrame(dst core.HardwareAddress, etherType uint16) []byte {
	data := make([]byte, 60)
	copy(data[0:6], dst[:])
	copy(data[6:12], []byte{0x02, 0, 0, 0, 0, 0x01})
	data[12], data[13] = byte(etherType>>8), byte(etherType)
	return data
}

func TestKernelFilter(t *testing.T) {
	vm := filterVM(t, filterOwn)

	tests := []struct {
		name   string
		frame  []byte
		accept bool
	}{
		{"broadcast arp", ethFrame(core.Broadcast, core.EtherTypeARP), true},
		{"broadcast ipv4", ethFrame(core.Broadcast, core.EtherTypeIPv4), true},
		{"unicast to me", ethFrame(filterOwn, core.EtherTypeIPv4), true},
		{"magic online to anyone", ethFrame(core.HardwareAddress{0x02, 0, 0, 0, 0, 0x09}, core.EtherTypeMagicOnline), true},
		{"magic offline to anyone", ethFrame(core.HardwareAddress{0x02, 0, 0, 0, 0, 0x09}, core.EtherTypeMagicOffline), true},
		{"unicast to other", ethFrame(core.HardwareAddress{0x02, 0, 0, 0, 0, 0x09}, core.EtherTypeIPv4), false},
		{"same prefix other suffix", ethFrame(core.HardwareAddress{0x1a, 0x11, 0xaf, 0xa0, 0x47, 0x12}, core.EtherTypeIPv4), false},
		{"half broadcast", ethFrame(core.HardwareAddress{0xff, 0xff, 0xff, 0xff, 0x00, 0x00}, core.EtherTypeARP), false},
		{"multicast", ethFrame(core.HardwareAddress{0x01, 0x00, 0x5e, 0x00, 0x00, 0x01}, core.EtherTypeIPv4), false},
		{"runt", []byte{0xff, 0xff, 0xff}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := vm.Run(tt.frame)
			require.NoError(t, err)
			if tt.accept {
				assert.Greater(t, n, 0)
			} else {
				assert.Zero(t, n)
			}
		})
	}
}

func TestKernelFilterInvalidSnapLen(t *testing.T) {
	_, err := KernelFilter(filterOwn, 10)
	assert.Error(t, err)
}
