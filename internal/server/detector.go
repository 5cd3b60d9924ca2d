package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/logger"
	"github.com/osse101/BlueprintCost_Go/internal/metrics"
)

// SuspiciousActivityDetector counts requests and failed logins per client over
// a fixed window. Both counters reset together when the window elapses.
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time

	window      time.Duration
	maxRequests int
	now         func() time.Time
}

// NewSuspiciousActivityDetector creates a detector using the server limits
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return newDetector(DetectorWindow, MaxRequestsPerWindow, time.Now)
}

func newDetector(window time.Duration, maxRequests int, now func() time.Time) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      now(),
		window:           window,
		maxRequests:      maxRequests,
		now:              now,
	}
}

// RecordFailedAuth counts a rejected API key and alerts at every multiple of
// the alert threshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuthByIP[ip]++

	if n := s.failedAuthByIP[ip]; n%FailedAuthAlertThreshold == 0 {
		slog.Warn(SecurityAlertFailedAuth, logger.AttrKeyClientIP, ip, "count", n, "window", s.window)
	}
}

// RecordRequest counts a request and reports whether the client is still
// inside its allowance
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requestCountByIP[ip]++

	n := s.requestCountByIP[ip]
	if n <= s.maxRequests {
		return true
	}

	over := n - s.maxRequests
	if over == 1 || over%RateAlertEvery == 0 {
		slog.Warn(SecurityAlertHighRate, logger.AttrKeyClientIP, ip, "count", n, "window", s.window)
	}
	return false
}

// rollWindow starts a new window once the current one has elapsed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindow() {
	if s.now().Sub(s.windowStart) <= s.window {
		return
	}
	clear(s.requestCountByIP)
	clear(s.failedAuthByIP)
	s.windowStart = s.now()
}

// RateLimitMiddleware rejects clients over their request allowance
func RateLimitMiddleware(proxies *ProxySet, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(proxies.ClientIP(r)) {
				metrics.RateLimitedTotal.Inc()
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(detector.window.Seconds())))
				writeMiddlewareError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
