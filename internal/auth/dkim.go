package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"emailengine/internal/dns"
)

// dkimSelectors is the fixed selector set probed in parallel, per §4.10.
var dkimSelectors = []string{
	"default", "selector1", "selector2", "google", "s1", "s2",
	"k1", "dkim", "mail", "email", "smtp", "mx",
}

// CheckDKIM probes the fixed selector set for domain in parallel, mirroring
// globusdigital-email-verifier's errgroup fan-out pattern (one goroutine per
// independent sub-check, errors collected via errgroup rather than ad-hoc
// channels). It returns the selectors that resolved to a present (non-empty
// p=) key.
func CheckDKIM(ctx context.Context, resolver dns.Resolver, domain string) []string {
	var (
		mu    sync.Mutex
		found []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, selector := range dkimSelectors {
		selector := selector
		g.Go(func() error {
			name := selector + "._domainkey." + domain
			result, err := resolver.Query(gctx, name, dns.TypeTXT)
			if err != nil || !result.Success {
				return nil
			}
			if selectorValid(result.Records) {
				mu.Lock()
				found = append(found, selector)
				mu.Unlock()
			}
			return nil
		})
	}
	// Errors from individual selector lookups are deliberately swallowed
	// inside each goroutine: a missing DKIM selector is not a probe
	// failure, so Wait's error is always nil here.
	_ = g.Wait()

	return found
}

// selectorValid reports whether any TXT record contains a present
// (non-empty) p= tag. An empty p= means the key was revoked.
func selectorValid(records []string) bool {
	for _, rec := range records {
		tags := parseTagList(rec)
		p, ok := tags["p"]
		if ok && strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
