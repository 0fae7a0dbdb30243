package reputation

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"emailengine/internal/dns"
)

// DefaultDNSBLZones is the default set of DNS blocklist zones checked in parallel.
var DefaultDNSBLZones = []string{
	"dbl.spamhaus.org",
	"multi.surbl.org",
	"multi.uribl.com",
}

// highRiskTLDs is the set of TLDs the pattern heuristic treats as high risk.
var highRiskTLDs = map[string]struct{}{
	"xyz": {}, "top": {}, "work": {}, "click": {}, "link": {}, "gq": {},
	"ml": {}, "cf": {}, "tk": {}, "ga": {}, "buzz": {}, "icu": {}, "loan": {}, "ooo": {},
}

// premiumTLDs is the set the score synthesis treats as a positive signal.
var premiumTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "edu": {}, "gov": {}, "io": {}, "co": {}, "dev": {}, "app": {},
}

// CheckBlocklists resolves "<domain>.<zone>" for each zone in parallel via
// an A-record lookup; any successful answer means the domain is listed.
// Mirrors the errgroup fan-out idiom used for CheckDKIM's selector sweep.
func CheckBlocklists(ctx context.Context, resolver dns.Resolver, zones []string, domain string) []string {
	var (
		mu     sync.Mutex
		listed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, zone := range zones {
		zone := zone
		g.Go(func() error {
			result, err := resolver.Query(gctx, domain+"."+zone, dns.TypeA)
			if err == nil && result.Success && len(result.Records) > 0 {
				mu.Lock()
				listed = append(listed, zone)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return listed
}

// PatternFlags reports the pattern-heuristic signals from §4.11.
type PatternFlags struct {
	HighRiskTLD    bool
	LongLeadLabel  bool // leading label length > 25
	ManyHyphens    bool // >= 3 hyphens
	ManyDigits     bool // >= 5 digits
	PremiumTLD     bool
}

// AnalyzePattern inspects domain's registrable form (eTLD+1) for the
// heuristics §4.11 lists, so a long or hyphenated subdomain under a
// reputable parent doesn't skew the result.
func AnalyzePattern(domain string) PatternFlags {
	d := registrableDomain(domain)
	tld := tldOf(d)
	labels := strings.Split(d, ".")
	lead := labels[0]

	_, highRisk := highRiskTLDs[tld]
	_, premium := premiumTLDs[tld]

	return PatternFlags{
		HighRiskTLD:   highRisk,
		LongLeadLabel: len(lead) > 25,
		ManyHyphens:   strings.Count(d, "-") >= 3,
		ManyDigits:    countDigits(d) >= 5,
		PremiumTLD:    premium,
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
