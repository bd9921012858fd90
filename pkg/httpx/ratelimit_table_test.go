package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time          { return c.now }
func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestLimiterTableRefill(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	table := newLimiterTable(RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}, clock.Now)

	ok, _ := table.take("a")
	require.True(t, ok)
	ok, _ = table.take("a")
	require.True(t, ok)

	ok, wait := table.take("a")
	require.False(t, ok)
	require.InDelta(t, 30, wait.Seconds(), 0.01)

	// A refused request does not push the refill further out.
	ok, wait = table.take("a")
	require.False(t, ok)
	require.InDelta(t, 30, wait.Seconds(), 0.01)

	clock.Advance(31 * time.Second)
	ok, _ = table.take("a")
	require.True(t, ok)
}

func TestLimiterTableSweepsIdleKeys(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	table := newLimiterTable(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, clock.Now)

	table.take("a")
	table.take("b")
	require.Equal(t, 2, table.size())

	clock.Advance(limiterIdleTTL - time.Minute)
	table.take("b")
	require.Equal(t, 2, table.size(), "nothing is swept before the first sweep time")

	clock.Advance(time.Minute)
	table.take("c")
	require.Equal(t, 2, table.size(), "a is dropped, b was seen recently")

	ok, _ := table.take("a")
	require.True(t, ok, "a swept key starts with a full bucket")
}

func TestRateLimitRetryAfter(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	config := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	handler := rateLimit(newLimiterTable(config, clock.Now), config, IPKeyExtractor)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send().Code)

	clock.Advance(15 * time.Second)
	rec := send()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "45", rec.Header().Get("Retry-After"))

	clock.Advance(46 * time.Second)
	require.Equal(t, http.StatusOK, send().Code)
}
