package ping

import (
	"time"
)

const DefaultTimeout = 30 * time.Second

// Config controls a single probe.
type Config struct {
	// ExpectedString is searched for in the body. Empty means no check.
	ExpectedString string
	ReturnHeaders  bool
	// Timeout bounds connect, headers and body read together. Zero means DefaultTimeout.
	Timeout        time.Duration
	DisableDigests bool
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeTimedOut
	OutcomeConnectionFailed
	OutcomeStreamFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeConnectionFailed:
		return "connection_failed"
	case OutcomeStreamFailed:
		return "stream_failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one probe. Nil pointers and a nil Headers map mean
// "not applicable", which is distinct from a zero value.
type Result struct {
	URL               string
	ResponseCode      *int
	RequestTime       *time.Duration
	TimedOut          bool
	ResponseSize      *int64
	ResponseMD5       *string
	ResponseSHA224    *string
	HasExpectedString *bool
	Headers           map[string]string

	Outcome Outcome
	Err     error
}

// RequestTimeMillis returns the elapsed time in milliseconds at full precision.
func (r Result) RequestTimeMillis() (float64, bool) {
	if r.RequestTime == nil {
		return 0, false
	}
	return float64(*r.RequestTime) / float64(time.Millisecond), true
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
