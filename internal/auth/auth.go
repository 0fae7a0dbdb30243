package auth

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"emailengine/internal/dns"
	"emailengine/internal/model"
)

// Check runs the SPF, DMARC, and DKIM-selector lookups for domain in
// parallel and folds them into the §4.10 score: SPF up to 35, DMARC up to
// 35, DKIM up to 30 (15 per valid selector, capped), each mapped from
// strong/moderate/weak/none as 35/25/10/0 (same mapping for SPF and DMARC).
func Check(ctx context.Context, resolver dns.Resolver, domain string) model.AuthCheck {
	var spfStrength, dmarcStrength Strength
	var dkimSelectorsFound []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spfStrength = lookupSPF(gctx, resolver, domain)
		return nil
	})
	g.Go(func() error {
		dmarcStrength = lookupDMARC(gctx, resolver, domain)
		return nil
	})
	g.Go(func() error {
		dkimSelectorsFound = CheckDKIM(gctx, resolver, domain)
		return nil
	})
	_ = g.Wait()

	score := strengthScore(spfStrength) + strengthScore(dmarcStrength) + dkimScore(len(dkimSelectorsFound))

	return model.AuthCheck{
		State: model.ProbeOK,
		SPF:   string(spfStrength),
		DMARC: string(dmarcStrength),
		DKIM:  dkimSelectorsFound,
		Score: score,
	}
}

func lookupSPF(ctx context.Context, resolver dns.Resolver, domain string) Strength {
	ascii := NormalizeDomain(domain)
	result, err := resolver.Query(ctx, ascii, dns.TypeTXT)
	if err != nil || !result.Success {
		return StrengthNone
	}
	for _, rec := range result.Records {
		if strings.HasPrefix(strings.ToLower(rec), "v=spf1") {
			return ParseSPF(rec).Strength
		}
	}
	return StrengthNone
}

func lookupDMARC(ctx context.Context, resolver dns.Resolver, domain string) Strength {
	ascii := NormalizeDomain(domain)
	result, err := resolver.Query(ctx, "_dmarc."+ascii, dns.TypeTXT)
	if err != nil || !result.Success {
		return StrengthNone
	}
	for _, rec := range result.Records {
		if strings.HasPrefix(strings.ToLower(rec), "v=dmarc1") {
			return ParseDMARC(rec).Strength
		}
	}
	return StrengthNone
}

func strengthScore(s Strength) int {
	switch s {
	case StrengthStrong:
		return 35
	case StrengthModerate:
		return 25
	case StrengthWeak:
		return 10
	default:
		return 0
	}
}

const (
	dkimPointsPerSelector = 15
	dkimMaxScore          = 30
)

func dkimScore(validSelectors int) int {
	score := validSelectors * dkimPointsPerSelector
	if score > dkimMaxScore {
		score = dkimMaxScore
	}
	return score
}
