// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesTotal counts decoded frames by classification verdict
	FramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plipbox_frames_total",
			Help: "Total number of decoded frames by class",
		},
		[]string{"class"},
	)

	// DecodeErrorsTotal counts frames rejected before classification
	DecodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plipbox_decode_errors_total",
			Help: "Total number of frames that could not be decoded",
		},
		[]string{"reason"},
	)

	// FramesFilteredTotal counts frames dropped by the Ethernet filter
	FramesFilteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plipbox_frames_filtered_total",
			Help: "Total number of frames dropped because they were not for this node",
		},
	)

	// HandlerErrorsTotal counts failed deliveries to the frame handler
	HandlerErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plipbox_handler_errors_total",
			Help: "Total number of frame handler errors",
		},
	)
)

// Decode error reasons.
const (
	ReasonTruncated = "truncated"
)
