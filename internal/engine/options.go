// Package engine wires the probe packages together into the public
// validate/validateBulk operations (C11/C12).
package engine

import "fmt"

// Options recognises the optional probes a caller may enable, mirroring the
// teacher's verifier toggles (EnableSMTPCheck, EnableGravatarCheck, ...) but
// as a plain value instead of builder methods, since every caller here is
// in-process rather than chaining a fluent config.
type Options struct {
	SMTPCheck           bool
	SMTPTimeoutMs       int
	AuthCheck           bool
	AuthTimeoutMs       int
	ReputationCheck     bool
	ReputationTimeoutMs int
	GravatarCheck       bool
	GravatarTimeoutMs   int

	// MaxTimeoutMs and Progress are only consulted by ValidateBulk: the
	// global deadline of §4.14 (0 means use the engine's configured
	// default) and an optional per-batch progress callback.
	MaxTimeoutMs int
	Progress     func(completed, total int)
}

// DefaultOptions returns every optional probe disabled, with the timeout
// defaults from spec.md §4.13.
func DefaultOptions() Options {
	return Options{
		SMTPTimeoutMs:       10000,
		AuthTimeoutMs:       10000,
		ReputationTimeoutMs: 15000,
		GravatarTimeoutMs:   5000,
	}
}

// withDefaults fills any zero timeout with its default so a caller can set
// only the checks they want without having to repeat every timeout.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SMTPTimeoutMs <= 0 {
		o.SMTPTimeoutMs = d.SMTPTimeoutMs
	}
	if o.AuthTimeoutMs <= 0 {
		o.AuthTimeoutMs = d.AuthTimeoutMs
	}
	if o.ReputationTimeoutMs <= 0 {
		o.ReputationTimeoutMs = d.ReputationTimeoutMs
	}
	if o.GravatarTimeoutMs <= 0 {
		o.GravatarTimeoutMs = d.GravatarTimeoutMs
	}
	return o
}

// enabledCount mirrors the teacher's enabledOptions: used to decide whether
// fanning the optional probes out across goroutines is worth the overhead.
func (o Options) enabledCount() int {
	c := 0
	if o.SMTPCheck {
		c++
	}
	if o.AuthCheck {
		c++
	}
	if o.ReputationCheck {
		c++
	}
	if o.GravatarCheck {
		c++
	}
	return c
}

// cacheKey builds the suffix-inclusive cache key of §4.13 step 1: the
// normalized email plus a marker per enabled optional probe, so two calls
// for the same address under different Options never collide in the cache.
func (o Options) cacheKey(normalizedEmail string) string {
	key := normalizedEmail
	if o.SMTPCheck {
		key += ":smtp"
	}
	if o.AuthCheck {
		key += ":auth"
	}
	if o.ReputationCheck {
		key += ":rep"
	}
	if o.GravatarCheck {
		key += ":grav"
	}
	return key
}

func (o Options) String() string {
	return fmt.Sprintf("Options{smtp:%v auth:%v rep:%v grav:%v}", o.SMTPCheck, o.AuthCheck, o.ReputationCheck, o.GravatarCheck)
}
