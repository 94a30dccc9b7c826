//go:build linux

// Package afpacket captures live frames through a TPACKET_V3 ring.
package afpacket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/gopacket/afpacket"

	"firestige.xyz/plipbox/internal/core"
)

// Source reads frames from one interface.
type Source struct {
	device string
	handle *afpacket.TPacket
}

// Open creates the capture ring on cfg.Interface and attaches cfg.Filter.
func Open(cfg Config) (*Source, error) {
	if cfg.Interface == "" {
		return nil, fmt.Errorf("afpacket source: interface is required")
	}

	frameSize, blockSize, numBlocks, err := recomputeSize(cfg.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, err
	}

	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(cfg.Interface),
		afpacket.OptFrameSize(frameSize),
		afpacket.OptBlockSize(blockSize),
		afpacket.OptNumBlocks(numBlocks),
		afpacket.OptPollTimeout(cfg.Timeout),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open afpacket on %s: %w", cfg.Interface, err)
	}

	if len(cfg.Filter) > 0 {
		if err := tp.SetBPF(cfg.Filter); err != nil {
			tp.Close()
			return nil, fmt.Errorf("failed to attach kernel filter on %s: %w", cfg.Interface, err)
		}
	}

	slog.Info("afpacket source opened",
		"interface", cfg.Interface,
		"frame_size", frameSize,
		"block_size", blockSize,
		"num_blocks", numBlocks,
		"kernel_filter", len(cfg.Filter) > 0)

	return &Source{device: cfg.Interface, handle: tp}, nil
}

// ReadFrame blocks until a frame arrives or ctx is done. Poll timeouts are
// used only to notice cancellation.
func (s *Source) ReadFrame(ctx context.Context) (core.RawFrame, error) {
	if s.handle == nil {
		return core.RawFrame{}, core.ErrSourceClosed
	}

	for {
		if err := ctx.Err(); err != nil {
			return core.RawFrame{}, err
		}

		data, ci, err := s.handle.ReadPacketData()
		if err != nil {
			if errors.Is(err, afpacket.ErrTimeout) {
				continue
			}
			return core.RawFrame{}, fmt.Errorf("failed to read frame from %s: %w", s.device, err)
		}

		return core.RawFrame{
			Data:       data,
			Timestamp:  ci.Timestamp,
			CaptureLen: uint32(ci.CaptureLength),
			OrigLen:    uint32(ci.Length),
		}, nil
	}
}

// Close releases the ring.
func (s *Source) Close() error {
	if s.handle != nil {
		s.handle.Close()
		s.handle = nil
	}
	return nil
}
