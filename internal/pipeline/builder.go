// Package pipeline implements pipeline construction.
package pipeline

import (
	"firestige.xyz/plipbox/internal/config"
	"firestige.xyz/plipbox/internal/core"
	"firestige.xyz/plipbox/internal/source"
)

// Builder provides a fluent interface for building pipelines.
// This is an alternative to using Config directly.
type Builder struct {
	config Config
}

// NewBuilder creates a new pipeline builder.
func NewBuilder() *Builder {
	return &Builder{
		config: Config{
			BufferSize: 1024,
			FilterEth:  true,
		},
	}
}

// FromConfig copies classification settings from the global configuration.
func (b *Builder) FromConfig(cfg *config.GlobalConfig) *Builder {
	b.config.Own = cfg.Node.MACAddr
	b.config.FilterEth = cfg.Filter.Eth
	b.config.DumpEth = cfg.Dump.Eth
	b.config.BufferSize = cfg.Pipeline.BufferSize
	return b
}

// WithSource sets the frame source.
func (b *Builder) WithSource(s source.Source) *Builder {
	b.config.Source = s
	return b
}

// WithOwnAddress sets the address frames are classified for.
func (b *Builder) WithOwnAddress(own core.HardwareAddress) *Builder {
	b.config.Own = own
	return b
}

// WithFilter enables or disables dropping not-for-me frames.
func (b *Builder) WithFilter(enabled bool) *Builder {
	b.config.FilterEth = enabled
	return b
}

// WithDump enables or disables per-frame logging.
func (b *Builder) WithDump(enabled bool) *Builder {
	b.config.DumpEth = enabled
	return b
}

// WithBufferSize sets the channel buffer size.
func (b *Builder) WithBufferSize(size int) *Builder {
	b.config.BufferSize = size
	return b
}

// WithHandler sets the frame handler.
func (b *Builder) WithHandler(h Handler) *Builder {
	b.config.Handler = h
	return b
}

// Build creates the pipeline.
func (b *Builder) Build() *Pipeline {
	return New(b.config)
}
