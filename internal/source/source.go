// Package source defines where raw frames come from.
package source

import (
	"context"

	"firestige.xyz/plipbox/internal/core"
)

// Source yields raw Ethernet frames one at a time.
//
// ReadFrame returns io.EOF once a finite source is exhausted. Each returned
// frame owns its Data; the source does not reuse the buffer.
type Source interface {
	ReadFrame(ctx context.Context) (core.RawFrame, error)
	Close() error
}
