package report

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dm/chm-go/internal/client"
	"github.com/dm/chm-go/internal/metrics"
)

// ErrorReporter receives fetch failures. Reporting is fire-and-forget.
type ErrorReporter interface {
	ReportHTTPError(err error)
}

// Report is the most recent error forwarded to a Sink.
type Report struct {
	Err     error
	Summary string
	At      time.Time
}

// Sink is the default ErrorReporter: it logs every error, counts it, and
// remembers the latest one so the console can show it as a toast.
// Safe for concurrent use.
type Sink struct {
	logger zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	last  *Report
	count int
}

// NewSink returns a Sink that logs through logger.
func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger, now: time.Now}
}

// ReportHTTPError implements ErrorReporter. Nil errors are ignored.
func (s *Sink) ReportHTTPError(err error) {
	if err == nil {
		return
	}
	summary := Classify(err)

	ev := s.logger.Error().Err(err).Str("summary", summary)
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		ev = ev.Int("status", httpErr.StatusCode)
	}
	ev.Msg("health check request failed")

	metrics.ReportedErrors.Inc()

	s.mu.Lock()
	s.last = &Report{Err: err, Summary: summary, At: s.now()}
	s.count++
	s.mu.Unlock()
}

// Last returns a copy of the most recent report, or nil if none.
func (s *Sink) Last() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	r := *s.last
	return &r
}

// Count returns the number of errors reported so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
