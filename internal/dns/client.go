// Package dns implements the engine's DNS client (C2): a small
// DNS-over-HTTPS resolver with provider fallback, sitting behind a circuit
// breaker (C3). It generalizes the teacher's DNSResolver interface —
// LookupHost/LookupMX over net — into record-type queries over HTTPS.
package dns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emailengine/pkg/monitoring"
)

// RecordType is one of the record types the resolver understands.
type RecordType string

const (
	TypeA  RecordType = "A"
	TypeMX RecordType = "MX"
	TypeTXT RecordType = "TXT"
)

// Result is the outcome of a single query.
type Result struct {
	Success bool
	Records []string
}

// Resolver is the interface the rest of the engine depends on, making the
// DNS client mockable in tests the way the teacher's DNSResolver is.
type Resolver interface {
	Query(ctx context.Context, domain string, rtype RecordType) (Result, error)
}

// dohResponse mirrors the JSON shape returned by dns.google/cloudflare-dns.com
// in application/dns-json form.
type dohResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Data string `json:"data"`
		Type int    `json:"type"`
	} `json:"Answer"`
}

// Client queries an ordered list of DNS-over-HTTPS providers, trying the
// next on transport error, non-2xx, or a non-zero DNS status. A well-formed
// empty answer (no records, status 0) is a successful result, not a reason
// to try the next provider.
type Client struct {
	HTTP      *http.Client
	Providers []string
	Timeout   time.Duration
}

// NewClient builds a Client with the given providers (tried in order) and
// per-call timeout.
func NewClient(providers []string, timeout time.Duration) *Client {
	return &Client{
		HTTP:      &http.Client{},
		Providers: providers,
		Timeout:   timeout,
	}
}

// Query resolves domain for the given record type, trying each configured
// provider in order. Success is only false once every provider has failed.
func (c *Client) Query(ctx context.Context, domain string, rtype RecordType) (Result, error) {
	var lastErr error

	for _, provider := range c.Providers {
		records, err := c.queryProvider(ctx, provider, domain, rtype)
		if err != nil {
			lastErr = err
			continue
		}
		return Result{Success: true, Records: records}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("dns: no providers configured")
	}
	return Result{Success: false}, lastErr
}

func (c *Client) queryProvider(ctx context.Context, provider, domain string, rtype RecordType) ([]string, error) {
	start := time.Now()
	defer func() { monitoring.RecordDNSLookup(string(rtype), time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	base := provider
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	endpoint := fmt.Sprintf("%s/resolve?name=%s&type=%s", base, url.QueryEscape(domain), rtype)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dns: %s returned status %d", provider, resp.StatusCode)
	}

	var body dohResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	// A well-formed negative answer (Status 0, no records — e.g. an MX-less
	// domain) is not a failure: it's reported as a successful empty result so
	// the caller can fall back to an A-record check instead of exhausting
	// providers and tripping the circuit breaker. Only a non-zero status
	// (SERVFAIL, NXDOMAIN, ...) is treated as a genuine per-provider failure.
	if body.Status == 0 && len(body.Answer) == 0 {
		return nil, nil
	}
	if body.Status != 0 {
		return nil, fmt.Errorf("dns: %s returned status %d for %s %s", provider, body.Status, domain, rtype)
	}

	records := make([]string, 0, len(body.Answer))
	for _, a := range body.Answer {
		records = append(records, strings.TrimSpace(a.Data))
	}
	return records, nil
}
