package ratelimit

import (
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// SMTPLimiter throttles outbound SMTP probes per remote domain, adapting
// DevyanshuNegi-email-validator's RateLimiterManager (a global limiter plus
// on-demand per-domain token buckets) to the engine's single
// per-remote-domain limit instead of a table of per-provider rates.
type SMTPLimiter struct {
	mu              sync.Mutex
	perDomain       map[string]*rate.Limiter
	perMinute       int
}

// NewSMTPLimiter builds a limiter allowing perMinute SMTP probes per domain
// per minute, with a burst equal to perMinute.
func NewSMTPLimiter(perMinute int) *SMTPLimiter {
	return &SMTPLimiter{
		perDomain: make(map[string]*rate.Limiter),
		perMinute: perMinute,
	}
}

// Allow reports whether an SMTP probe against domain may proceed right now,
// consuming a token if so.
func (l *SMTPLimiter) Allow(domain string) bool {
	return l.limiterFor(domain).Allow()
}

func (l *SMTPLimiter) limiterFor(domain string) *rate.Limiter {
	domain = strings.ToLower(domain)

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.perDomain[domain]
	if !ok {
		// perMinute per 60s expressed as an events-per-second rate.
		limiter = rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute)
		l.perDomain[domain] = limiter
	}
	return limiter
}
