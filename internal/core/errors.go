// Package core defines sentinel errors.
package core

import "errors"

// Sentinel errors, wrapped with context at call sites and matched with errors.Is.
var (
	// Frame decoding errors
	ErrTruncatedFrame = errors.New("plipbox: truncated frame")
	ErrOutOfBounds    = errors.New("plipbox: field out of bounds")

	// Address errors
	ErrInvalidHardwareAddress = errors.New("plipbox: invalid hardware address")

	// Source errors
	ErrUnsupportedLinkType = errors.New("plipbox: unsupported link type")
	ErrSourceClosed        = errors.New("plipbox: source closed")

	// Configuration errors
	ErrConfigInvalid = errors.New("plipbox: invalid configuration")
)
