// Package core defines core data structures with zero external dependencies.
package core

import "time"

// RawFrame is one link-layer frame handed over by a capture source.
type RawFrame struct {
	Data       []byte    // Frame bytes starting at the destination address
	Timestamp  time.Time // Capture timestamp
	CaptureLen uint32    // Bytes actually captured
	OrigLen    uint32    // Length on the wire
}
