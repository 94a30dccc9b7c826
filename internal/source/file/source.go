// Package file reads frames from pcap and pcapng capture files.
package file

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/plipbox/internal/core"
)

// pcapng section header block type.
const ngSectionHeaderMagic = 0x0A0D0D0A

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Source replays the frames of one capture file.
type Source struct {
	path   string
	f      *os.File
	reader packetReader
}

// Open opens a pcap or pcapng file holding Ethernet frames.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("file source: path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file %s: %w", path, err)
	}

	reader, err := newReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read capture file %s: %w", path, err)
	}

	if lt := reader.LinkType(); lt != layers.LinkTypeEthernet {
		f.Close()
		return nil, fmt.Errorf("%w: %s has link type %s", core.ErrUnsupportedLinkType, path, lt)
	}

	return &Source{path: path, f: f, reader: reader}, nil
}

func newReader(br *bufio.Reader) (packetReader, error) {
	magic, err := br.Peek(4)
	if err != nil {
		return nil, err
	}

	if binary.BigEndian.Uint32(magic) == ngSectionHeaderMagic {
		ng, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, err
		}
		return ng, nil
	}

	r, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ReadFrame returns the next frame in the file, or io.EOF at the end.
func (s *Source) ReadFrame(ctx context.Context) (core.RawFrame, error) {
	if err := ctx.Err(); err != nil {
		return core.RawFrame{}, err
	}
	if s.reader == nil {
		return core.RawFrame{}, core.ErrSourceClosed
	}

	data, ci, err := s.reader.ReadPacketData()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.RawFrame{}, io.EOF
		}
		return core.RawFrame{}, fmt.Errorf("failed to read frame from %s: %w", s.path, err)
	}

	return core.RawFrame{
		Data:       data,
		Timestamp:  ci.Timestamp,
		CaptureLen: uint32(ci.CaptureLength),
		OrigLen:    uint32(ci.Length),
	}, nil
}

// Close releases the file. Further reads return core.ErrSourceClosed.
func (s *Source) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.reader = nil
	return err
}
