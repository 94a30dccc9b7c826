package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerExposesFrameCounters(t *testing.T) {
	FramesTotal.WithLabelValues("for-me").Inc()
	FramesFilteredTotal.Inc()

	s := NewServer("127.0.0.1:0", "")
	require.NoError(t, s.Start(context.Background()))
	defer func() {
		assert.NoError(t, s.Stop(context.Background()))
	}()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `plipbox_frames_total{class="for-me"}`), "missing frames counter")
	assert.True(t, strings.Contains(text, "plipbox_frames_filtered_total"), "missing filtered counter")
}

func TestServerStartBindError(t *testing.T) {
	first := NewServer("127.0.0.1:0", "/metrics")
	require.NoError(t, first.Start(context.Background()))
	defer first.Stop(context.Background())

	second := NewServer(first.Addr(), "/metrics")
	assert.Error(t, second.Start(context.Background()))
}

func TestServerStopWithoutStart(t *testing.T) {
	s := NewServer(":0", "/metrics")
	assert.NoError(t, s.Stop(context.Background()))
}

func TestDecodeErrorCounter(t *testing.T) {
	before := testutil.ToFloat64(DecodeErrorsTotal.WithLabelValues(ReasonTruncated))
	DecodeErrorsTotal.WithLabelValues(ReasonTruncated).Inc()
	after := testutil.ToFloat64(DecodeErrorsTotal.WithLabelValues(ReasonTruncated))
	assert.Equal(t, before+1, after)
}
