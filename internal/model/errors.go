package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel error kinds, per the engine's error-handling contract. Orchestration
// errors from a single probe never reach the caller — they are converted into
// that probe's neutral result instead (see Checks). These are reserved for
// the fatal, call-level failures: bad input, exhausted rate limits, and the
// circuit breaker's fail-fast signal bubbling out of a synchronous dependency.
var (
	ErrInvalidSyntax     = errors.New("emailengine: invalid email syntax")
	ErrInvalidBulkSize   = errors.New("emailengine: bulk request exceeds maximum size")
	ErrDNSUnavailable    = errors.New("emailengine: dns providers unavailable")
	ErrDNSTimeout        = errors.New("emailengine: dns lookup timed out")
	ErrSMTPUnreachable   = errors.New("emailengine: smtp host unreachable")
	ErrCircuitOpen       = errors.New("emailengine: circuit breaker open")
	ErrProbeTimeout      = errors.New("emailengine: probe timed out")
	ErrTransientUpstream = errors.New("emailengine: transient upstream error")
	ErrInvalidInput      = errors.New("emailengine: invalid input")
)

// RateLimitedError is returned when a caller has exceeded its quota. It
// carries how long the caller should wait before retrying.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("emailengine: rate limited, retry after %s", e.RetryAfter)
}

// SMTPRejectedError wraps a definitive SMTP rejection code.
type SMTPRejectedError struct {
	Code int
}

func (e *SMTPRejectedError) Error() string {
	return fmt.Sprintf("emailengine: smtp rejected with code %d", e.Code)
}
