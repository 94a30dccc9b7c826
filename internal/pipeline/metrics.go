// Package pipeline implements pipeline metrics.
package pipeline

import (
	"sync/atomic"

	"firestige.xyz/plipbox/internal/core"
)

// Metrics contains per-pipeline counters.
type Metrics struct {
	Received      atomic.Uint64
	Decoded       atomic.Uint64
	Truncated     atomic.Uint64
	MagicOnline   atomic.Uint64
	MagicOffline  atomic.Uint64
	ForMe         atomic.Uint64
	NotForMe      atomic.Uint64
	Filtered      atomic.Uint64
	Delivered     atomic.Uint64
	HandlerErrors atomic.Uint64
}

func (m *Metrics) countClass(c core.Class) {
	switch c {
	case core.ClassMagicOnline:
		m.MagicOnline.Add(1)
	case core.ClassMagicOffline:
		m.MagicOffline.Add(1)
	case core.ClassForMe:
		m.ForMe.Add(1)
	default:
		m.NotForMe.Add(1)
	}
}

func (m *Metrics) snapshot() Stats {
	return Stats{
		Received:      m.Received.Load(),
		Decoded:       m.Decoded.Load(),
		Truncated:     m.Truncated.Load(),
		MagicOnline:   m.MagicOnline.Load(),
		MagicOffline:  m.MagicOffline.Load(),
		ForMe:         m.ForMe.Load(),
		NotForMe:      m.NotForMe.Load(),
		Filtered:      m.Filtered.Load(),
		Delivered:     m.Delivered.Load(),
		HandlerErrors: m.HandlerErrors.Load(),
	}
}

// Stats represents pipeline statistics.
type Stats struct {
	Received      uint64
	Decoded       uint64
	Truncated     uint64
	MagicOnline   uint64
	MagicOffline  uint64
	ForMe         uint64
	NotForMe      uint64
	Filtered      uint64
	Delivered     uint64
	HandlerErrors uint64
}
