package engine

import (
	"context"
	"net/http"
	"time"

	"emailengine/internal/cache"
	"emailengine/internal/config"
	"emailengine/internal/dns"
	"emailengine/internal/model"
	"emailengine/internal/ratelimit"
	"emailengine/internal/reputation"
	"emailengine/internal/smtp"
)

// stubResolver answers MX/A/TXT queries from fixed maps, keyed by domain,
// so engine tests never touch the network.
type stubResolver struct {
	mx  map[string][]string
	a   map[string][]string
	txt map[string][]string
}

func (s stubResolver) Query(ctx context.Context, domain string, rtype dns.RecordType) (dns.Result, error) {
	var table map[string][]string
	switch rtype {
	case dns.TypeMX:
		table = s.mx
	case dns.TypeA:
		table = s.a
	case dns.TypeTXT:
		table = s.txt
	}
	if recs, ok := table[domain]; ok {
		return dns.Result{Success: true, Records: recs}, nil
	}
	return dns.Result{Success: false}, nil
}

// newTestEngine builds an Engine around a stubResolver, with SMTP/HTTP
// dependencies left at harmless defaults since most orchestrator tests only
// exercise the always-on probes.
func newTestEngine(resolver dns.Resolver) *Engine {
	cfg := config.Default()
	smtpLimiter := ratelimit.NewSMTPLimiter(cfg.RateSMTPPerDomain)

	return &Engine{
		Resolver:    resolver,
		HTTPClient:  http.DefaultClient,
		SMTPProber:  smtp.NewProber(smtpLimiter, cfg.SMTPTimeout),
		RDAPServers: reputation.RDAPServers{},
		DNSBLZones:  cfg.DNSBLZones,

		domainCache:     cache.New[model.DomainCheck](2000, 10*time.Minute),
		mxCache:         cache.New[model.MXCheck](2000, 5*time.Minute),
		blacklistCache:  cache.New[model.BlacklistCheck](1000, 30*time.Minute),
		catchAllCache:   cache.New[model.CatchAllCheck](500, time.Hour),
		smtpCache:       cache.New[model.SMTPCheck](1000, 5*time.Minute),
		authCache:       cache.New[model.AuthCheck](500, 10*time.Minute),
		reputationCache: cache.New[model.ReputationCheck](500, 30*time.Minute),
		gravatarCache:   cache.New[model.GravatarCheck](500, time.Hour),
		resultCache:     cache.New[model.ValidationResult](1000, 5*time.Minute),
		resultTTL:       5 * time.Minute,
		coalescer:       cache.NewCoalescer[model.ValidationResult](),

		ClientLimiter: ratelimit.NewWindowLimiter(cfg.RateSinglePerMinute, time.Minute),
		BulkLimiter:   ratelimit.NewWindowLimiter(cfg.RateBulkPerMinute, time.Minute),

		MaxBulkSize:       cfg.MaxBulkSize,
		BulkBatchSize:     cfg.BulkBatchSize,
		BulkBatchDelay:    cfg.BulkBatchDelay,
		BulkMaxTimeout:    cfg.BulkMaxTimeout,
		BulkMinTimeBuffer: cfg.BulkMinTimeBuffer,
	}
}
