package transport

import "sync/atomic"

// Stats holds process-wide gRPC counters for a Client instance. Fields are
// updated with atomic operations; Snapshot reads each field independently,
// so a snapshot taken concurrently with an update may interleave fields
// from before and after that update.
type Stats struct {
	requests       atomic.Int64
	retries        atomic.Int64
	failures       atomic.Int64
	lastLatencyNs  atomic.Int64
	lastStatusCode atomic.Int64
	lastHTTPStatus atomic.Int64
}

// Snapshot is a point-in-time read of Stats.
type Snapshot struct {
	Requests       int64
	Retries        int64
	Failures       int64
	LastLatencyNs  int64
	LastStatusCode int64
	LastHTTPStatus int64
}

func (s *Stats) recordAttempt() {
	s.requests.Add(1)
}

func (s *Stats) recordRetry() {
	s.retries.Add(1)
}

func (s *Stats) recordFailure() {
	s.failures.Add(1)
}

func (s *Stats) recordLatency(ns int64) {
	s.lastLatencyNs.Store(ns)
}

func (s *Stats) recordStatusCode(code int) {
	s.lastStatusCode.Store(int64(code))
}

func (s *Stats) recordHTTPStatus(status int) {
	s.lastHTTPStatus.Store(int64(status))
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Requests:       s.requests.Load(),
		Retries:        s.retries.Load(),
		Failures:       s.failures.Load(),
		LastLatencyNs:  s.lastLatencyNs.Load(),
		LastStatusCode: s.lastStatusCode.Load(),
		LastHTTPStatus: s.lastHTTPStatus.Load(),
	}
}
