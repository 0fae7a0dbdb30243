// Package model defines the data structures shared across the validation
// engine: the result shapes returned to callers and the per-probe check
// results they are built from.
package model

import "time"

// Deliverability is the engine's qualitative verdict about whether mail can
// likely be delivered, independent of whether it would be read.
type Deliverability string

const (
	DeliverabilityDeliverable   Deliverability = "deliverable"
	DeliverabilityRisky        Deliverability = "risky"
	DeliverabilityUndeliverable Deliverability = "undeliverable"
	DeliverabilityUnknown      Deliverability = "unknown"
)

// RiskLevel buckets the overall confidence in an address.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ProbeState marks whether a check actually ran.
type ProbeState string

const (
	ProbeOK      ProbeState = "ok"
	ProbeSkipped ProbeState = "skipped"
	ProbeFailed  ProbeState = "failed"
)

// SyntaxCheck is the result of the lexical probe (C1a).
type SyntaxCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// DomainCheck is the result of the format-only domain probe (C1c).
type DomainCheck struct {
	State   ProbeState `json:"state"`
	Valid   bool       `json:"valid"`
	Exists  bool       `json:"exists"`
	Message string     `json:"message,omitempty"`
}

// MXCheck is the result of the DNS MX lookup.
type MXCheck struct {
	State   ProbeState `json:"state"`
	Valid   bool       `json:"valid"`
	Records []string   `json:"records,omitempty"`
	Message string     `json:"message,omitempty"`
	Stale   bool       `json:"stale,omitempty"`
}

// DisposableCheck reports whether the domain is a known disposable provider.
type DisposableCheck struct {
	State        ProbeState `json:"state"`
	IsDisposable bool       `json:"isDisposable"`
}

// RoleCheck reports whether the local part is a role account.
type RoleCheck struct {
	State       ProbeState `json:"state"`
	IsRoleBased bool       `json:"isRoleBased"`
	Role        string     `json:"role,omitempty"`
}

// FreeProviderCheck reports whether the domain is a known free webmail provider.
type FreeProviderCheck struct {
	State    ProbeState `json:"state"`
	IsFree   bool       `json:"isFree"`
	Provider string     `json:"provider,omitempty"`
}

// TypoCheck reports a likely misspelled domain.
type TypoCheck struct {
	State      ProbeState `json:"state"`
	HasTypo    bool       `json:"hasTypo"`
	Suggestion string     `json:"suggestion,omitempty"`
}

// AliasCheck reports whether the local part is a provider-specific alias
// (Gmail dot/plus, Yahoo hyphen, Outlook plus) of some canonical mailbox.
type AliasCheck struct {
	State     ProbeState `json:"state"`
	IsAlias   bool       `json:"isAlias"`
	Canonical string     `json:"canonical,omitempty"`
}

// BlacklistCheck reports DNSBL membership.
type BlacklistCheck struct {
	State       ProbeState `json:"state"`
	Blacklisted bool       `json:"blacklisted"`
	Lists       []string   `json:"lists,omitempty"`
}

// CatchAllCheck reports whether the domain accepts mail for any local part.
type CatchAllCheck struct {
	State    ProbeState `json:"state"`
	CatchAll bool       `json:"catchAll"`
}

// SMTPCheck is the result of the mailbox probe (C7).
type SMTPCheck struct {
	State       ProbeState `json:"state"`
	Exists      string     `json:"exists"` // "true" | "false" | "unknown"
	CatchAll    bool       `json:"catchAll,omitempty"`
	Greylisted  bool       `json:"greylisted,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// AuthCheck is the result of the SPF/DMARC/DKIM probe (C8).
type AuthCheck struct {
	State    ProbeState `json:"state"`
	SPF      string     `json:"spf"`  // strong|moderate|weak|none
	DMARC    string     `json:"dmarc"`
	DKIM     []string   `json:"dkimSelectors,omitempty"`
	Score    int        `json:"score"`
	Message  string     `json:"message,omitempty"`
}

// ReputationCheck is the result of the domain reputation probe (C9).
type ReputationCheck struct {
	State       ProbeState `json:"state"`
	Score       int        `json:"score"`
	Risk        string     `json:"risk"`
	AgeInDays   *int       `json:"ageInDays,omitempty"`
	Blacklisted []string   `json:"blacklisted,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// GravatarCheck is the result of the Gravatar probe (C10).
type GravatarCheck struct {
	State   ProbeState `json:"state"`
	Checked bool       `json:"checked"`
	Exists  bool       `json:"exists"`
	URL     string     `json:"url,omitempty"`
}

// Checks is the fixed tuple of probe sub-results. The optional probes
// (SMTP, Auth, Reputation, Gravatar) are nil when not requested.
type Checks struct {
	Syntax       SyntaxCheck       `json:"syntax"`
	Domain       DomainCheck       `json:"domain"`
	MX           MXCheck           `json:"mx"`
	Disposable   DisposableCheck   `json:"disposable"`
	Role         RoleCheck         `json:"role"`
	FreeProvider FreeProviderCheck `json:"freeProvider"`
	Typo         TypoCheck         `json:"typo"`
	Alias        AliasCheck        `json:"alias"`
	Blacklist    BlacklistCheck    `json:"blacklist"`
	CatchAll     CatchAllCheck     `json:"catchAll"`
	SMTP         *SMTPCheck        `json:"smtp,omitempty"`
	Auth         *AuthCheck        `json:"auth,omitempty"`
	Reputation   *ReputationCheck  `json:"reputation,omitempty"`
	Gravatar     *GravatarCheck    `json:"gravatar,omitempty"`
}

// ValidationResult is the immutable outcome of a single validation.
type ValidationResult struct {
	Email          string         `json:"email"`
	IsValid        bool           `json:"isValid"`
	Score          int            `json:"score"`
	Deliverability Deliverability `json:"deliverability"`
	Risk           RiskLevel      `json:"risk"`
	Checks         Checks         `json:"checks"`
	Message        string         `json:"message,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// WithTimestamp returns a shallow copy of r with Timestamp refreshed to now.
// Used when serving a cache hit: the invariant is that content is identical
// but the freshness marker reflects the moment it was served.
func (r ValidationResult) WithTimestamp(now time.Time) ValidationResult {
	r.Timestamp = now
	return r
}
