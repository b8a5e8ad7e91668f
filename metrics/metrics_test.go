package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salespoint/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SubscribeCountsEvents(t *testing.T) {
	m := New()
	bus := events.NewBus()
	m.Subscribe(bus)

	ctx := context.Background()
	bus.Emit(ctx, events.EntryRecordedEvent{Team: "team1", Calls: 40})
	bus.Emit(ctx, events.EntryRecordedEvent{Team: "team1", Calls: 55, Replaced: true})
	bus.Emit(ctx, events.DayResetEvent{Team: "team1"})

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.events.WithLabelValues("entry_recorded")) == 2 &&
			testutil.ToFloat64(m.events.WithLabelValues("day_reset")) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.entriesRecorded.WithLabelValues("team1", "true")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.entryCalls.WithLabelValues("team1")))
}

func TestMetrics_ObserveAndExpose(t *testing.T) {
	m := New()
	m.ObserveAI("coaching", nil)
	m.ObserveAI("smart_input", errors.New("timeout"))
	m.ObserveHTTP(http.MethodGet, "/api/teams/{team}/dashboard", http.StatusOK, 30*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("smart_input", "error")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `salespoint_http_requests_total{method="GET",route="/api/teams/{team}/dashboard",status="200"} 1`))
	assert.Contains(t, body, "salespoint_ai_requests_total")
}
