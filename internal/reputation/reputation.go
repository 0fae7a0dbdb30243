package reputation

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"emailengine/internal/dns"
	"emailengine/internal/model"
)

const baseScore = 70

// Check runs the age and blocklist sub-probes in parallel, then the pattern
// heuristic, and folds them into a single score per §4.11's factor-delta table, clamped to
// [0,100]. Risk is derived from the final score.
func Check(ctx context.Context, httpClient *http.Client, resolver dns.Resolver, servers RDAPServers, zones []string, domain string, rdapTimeout time.Duration) model.ReputationCheck {
	var age AgeResult
	var blocked []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		age = CheckAge(gctx, httpClient, servers, domain, rdapTimeout)
		return nil
	})
	g.Go(func() error {
		blocked = CheckBlocklists(gctx, resolver, zones, domain)
		return nil
	})
	_ = g.Wait()

	pattern := AnalyzePattern(domain)
	score := synthesize(age, blocked, pattern)

	return model.ReputationCheck{
		State:       model.ProbeOK,
		Score:       score,
		Risk:        string(riskFromScore(score)),
		AgeInDays:   age.AgeInDays,
		Blacklisted: blocked,
		Message:     age.Message,
	}
}

func synthesize(age AgeResult, blocked []string, pattern PatternFlags) int {
	score := baseScore

	switch {
	case age.AgeInDays != nil && *age.AgeInDays < 7:
		score -= 40
	case age.AgeInDays != nil && *age.AgeInDays < 30:
		score -= 25
	case age.AgeInDays != nil && *age.AgeInDays < 180:
		score -= 10
	case age.AgeInDays != nil && *age.AgeInDays > 730:
		score += 20
	case age.AgeInDays != nil && *age.AgeInDays > 365:
		score += 10
	}

	if len(blocked) > 0 {
		score -= 30 * len(blocked)
	} else {
		score += 15
	}

	if pattern.HighRiskTLD {
		score -= 15
	}
	if pattern.PremiumTLD {
		score += 10
	}
	if pattern.LongLeadLabel {
		score -= 5
	}
	if pattern.ManyHyphens {
		score -= 5
	}
	if pattern.ManyDigits {
		score -= 5
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RiskLevel buckets a reputation score into a qualitative risk label.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func riskFromScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	case score >= 40:
		return RiskHigh
	default:
		return RiskCritical
	}
}
