//go:build !linux

// Package afpacket captures live frames through a TPACKET_V3 ring.
package afpacket

import (
	"context"
	"errors"
	"runtime"

	"firestige.xyz/plipbox/internal/core"
)

var errUnsupportedPlatform = errors.New("afpacket source requires linux, running on " + runtime.GOOS)

// Source is unavailable on this platform.
type Source struct{}

// Open always fails outside linux.
func Open(cfg Config) (*Source, error) {
	return nil, errUnsupportedPlatform
}

func (s *Source) ReadFrame(ctx context.Context) (core.RawFrame, error) {
	return core.RawFrame{}, errUnsupportedPlatform
}

func (s *Source) Close() error {
	return nil
}
