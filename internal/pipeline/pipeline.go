// Package pipeline implements the frame classification pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"firestige.xyz/plipbox/internal/core"
	"firestige.xyz/plipbox/internal/core/decoder"
	"firestige.xyz/plipbox/internal/metrics"
	"firestige.xyz/plipbox/internal/source"
)

// Result is one classified frame handed to the Handler.
// View borrows Frame.Data.
type Result struct {
	Frame core.RawFrame
	View  *decoder.FrameView
	Class core.Class
}

// Handler consumes classified frames. A returned error is logged and counted;
// the pipeline keeps going.
type Handler func(ctx context.Context, res Result) error

// Pipeline reads frames from a source, classifies them for one hardware
// address and delivers them to a handler.
type Pipeline struct {
	source     source.Source
	own        core.HardwareAddress
	filterEth  bool
	dumpEth    bool
	bufferSize int
	handler    Handler
	stats      *Metrics
}

// Config contains pipeline configuration.
type Config struct {
	Source     source.Source
	Own        core.HardwareAddress
	FilterEth  bool // drop not-for-me frames before the handler
	DumpEth    bool // log every decoded frame
	BufferSize int  // capture → classify channel capacity
	Handler    Handler
}

// New creates a new pipeline.
func New(cfg Config) *Pipeline {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Handler == nil {
		cfg.Handler = func(context.Context, Result) error { return nil }
	}

	return &Pipeline{
		source:     cfg.Source,
		own:        cfg.Own,
		filterEth:  cfg.FilterEth,
		dumpEth:    cfg.DumpEth,
		bufferSize: cfg.BufferSize,
		handler:    cfg.Handler,
		stats:      &Metrics{},
	}
}

// Run processes frames until the source is exhausted or ctx is done.
// Both end conditions return nil; a failing source returns its error.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.source == nil {
		return errors.New("pipeline: no source configured")
	}

	slog.Info("pipeline starting", "own", p.own.String(), "filter_eth", p.filterEth, "dump_eth", p.dumpEth)

	frames := make(chan core.RawFrame, p.bufferSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		return p.captureLoop(gctx, frames)
	})
	g.Go(func() error {
		return p.processLoop(gctx, frames)
	})

	err := g.Wait()
	s := p.Stats()
	slog.Info("pipeline stopped",
		"received", s.Received,
		"truncated", s.Truncated,
		"for_me", s.ForMe,
		"filtered", s.Filtered,
		"delivered", s.Delivered)
	return err
}

// captureLoop reads frames from the source into the processing channel.
func (p *Pipeline) captureLoop(ctx context.Context, out chan<- core.RawFrame) error {
	for {
		frame, err := p.source.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("capture failed: %w", err)
		}

		select {
		case out <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}

// processLoop drains the channel until it is closed or ctx is done.
func (p *Pipeline) processLoop(ctx context.Context, in <-chan core.RawFrame) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-in:
			if !ok {
				return nil
			}
			p.processFrame(ctx, frame)
		}
	}
}

// processFrame decodes, classifies, filters and delivers a single frame.
func (p *Pipeline) processFrame(ctx context.Context, frame core.RawFrame) {
	p.stats.Received.Add(1)

	view, err := decoder.Decode(frame.Data)
	if err != nil {
		p.stats.Truncated.Add(1)
		metrics.DecodeErrorsTotal.WithLabelValues(metrics.ReasonTruncated).Inc()
		slog.Debug("dropping undecodable frame", "len", len(frame.Data), "error", err)
		return
	}
	p.stats.Decoded.Add(1)

	class := view.Classify(p.own)
	p.stats.countClass(class)
	metrics.FramesTotal.WithLabelValues(class.String()).Inc()

	if p.dumpEth {
		slog.Info("eth", "frame", view.String(), "class", class.String())
	}

	if p.filterEth && class == core.ClassNotForMe {
		p.stats.Filtered.Add(1)
		metrics.FramesFilteredTotal.Inc()
		return
	}

	if err := p.handler(ctx, Result{Frame: frame, View: view, Class: class}); err != nil {
		p.stats.HandlerErrors.Add(1)
		metrics.HandlerErrorsTotal.Inc()
		slog.Warn("frame handler failed", "frame", view.String(), "error", err)
		return
	}
	p.stats.Delivered.Add(1)
}

// Stats returns pipeline statistics.
func (p *Pipeline) Stats() Stats {
	return p.stats.snapshot()
}
