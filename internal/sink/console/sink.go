// Package console implements the console sink for classified frames.
// Outputs one line per frame to a writer in text or JSON format.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"firestige.xyz/plipbox/internal/pipeline"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Sink writes classified frames to a writer.
type Sink struct {
	w            io.Writer
	format       string
	mu           sync.Mutex
	writtenCount atomic.Uint64
}

// New creates a console sink. An empty format selects text.
func New(w io.Writer, format string) (*Sink, error) {
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("invalid format %q, must be json or text", format)
	}
	return &Sink{w: w, format: format}, nil
}

// Handle satisfies pipeline.Handler.
func (s *Sink) Handle(_ context.Context, res pipeline.Result) error {
	if res.View == nil {
		return fmt.Errorf("nil frame view")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.format == FormatJSON {
		err = s.writeJSON(res)
	} else {
		err = s.writeText(res)
	}
	if err != nil {
		return err
	}
	s.writtenCount.Add(1)
	return nil
}

// Written returns the number of frames written so far.
func (s *Sink) Written() uint64 {
	return s.writtenCount.Load()
}

// Close logs the final count.
func (s *Sink) Close() error {
	slog.Debug("console sink closed", "format", s.format, "total_written", s.writtenCount.Load())
	return nil
}

// writeText writes "<view> <class>".
func (s *Sink) writeText(res pipeline.Result) error {
	_, err := fmt.Fprintf(s.w, "%s %s\n", res.View, res.Class)
	return err
}

type frameRecord struct {
	Timestamp   string `json:"timestamp,omitempty"`
	Class       string `json:"class"`
	Source      string `json:"src"`
	Destination string `json:"dst"`
	EtherType   string `json:"ethertype"`
	PayloadSize int    `json:"payload_size"`
	CaptureLen  uint32 `json:"capture_len,omitempty"`
	OrigLen     uint32 `json:"orig_len,omitempty"`
}

func (s *Sink) writeJSON(res pipeline.Result) error {
	rec := frameRecord{
		Class:       res.Class.String(),
		Source:      res.View.Source().String(),
		Destination: res.View.Destination().String(),
		EtherType:   fmt.Sprintf("0x%04x", res.View.EtherType()),
		PayloadSize: res.View.PayloadSize(),
		CaptureLen:  res.Frame.CaptureLen,
		OrigLen:     res.Frame.OrigLen,
	}
	if !res.Frame.Timestamp.IsZero() {
		rec.Timestamp = res.Frame.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z07:00")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}
	data = append(data, '\n')
	_, err = s.w.Write(data)
	return err
}
