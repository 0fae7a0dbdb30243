package engine

import (
	"net/http"
	"time"

	"emailengine/internal/cache"
	"emailengine/internal/config"
	"emailengine/internal/dns"
	"emailengine/internal/model"
	"emailengine/internal/ratelimit"
	"emailengine/internal/reputation"
	"emailengine/internal/smtp"
	pkgcache "emailengine/pkg/cache"
)

// Engine is the package boundary an HTTP layer would sit behind: it owns
// every substrate (caches, breaker, limiters) the probes need and exposes
// Validate/ValidateBulk, mirroring the teacher's EmailService constructed
// with NewEmailServiceWithDeps.
type Engine struct {
	Resolver    dns.Resolver
	HTTPClient  *http.Client
	SMTPProber  *smtp.Prober
	RDAPServers reputation.RDAPServers
	DNSBLZones  []string

	domainCache     *cache.Cache[model.DomainCheck]
	mxCache         *cache.Cache[model.MXCheck]
	blacklistCache  *cache.Cache[model.BlacklistCheck]
	catchAllCache   *cache.Cache[model.CatchAllCheck]
	smtpCache       *cache.Cache[model.SMTPCheck]
	authCache       *cache.Cache[model.AuthCheck]
	reputationCache *cache.Cache[model.ReputationCheck]
	gravatarCache   *cache.Cache[model.GravatarCheck]
	resultCache     *cache.Cache[model.ValidationResult]
	coalescer       *cache.Coalescer[model.ValidationResult]

	// ClientLimiter/BulkLimiter enforce the client-facing quotas of §4.8.
	// Validate/ValidateBulk don't consult them directly since neither takes
	// a caller identity — an HTTP layer sitting in front of this package
	// calls Check itself before invoking Validate/ValidateBulk, the same way
	// the teacher's rapidapi middleware runs ahead of EmailService.
	ClientLimiter *ratelimit.WindowLimiter
	BulkLimiter   *ratelimit.WindowLimiter

	// ResultBackingCache is an optional second tier behind resultCache:
	// when set (e.g. to a pkg/cache.RedisCache), the full-result cache's
	// writes are mirrored there so multiple engine processes share
	// full-result hits, per §5's "Redis for multi-process deployments"
	// wiring. Nil by default — the in-process typed cache is sufficient
	// for a single process, and this package never constructs a Redis
	// client itself (that's left to whatever composes Engine).
	ResultBackingCache pkgcache.Cache

	resultTTL time.Duration

	MaxBulkSize       int
	BulkBatchSize     int
	BulkBatchDelay    time.Duration
	BulkMaxTimeout    time.Duration
	BulkMinTimeBuffer time.Duration
}

// New builds an Engine wired from cfg: a DoH client behind a circuit
// breaker, an SMTP prober with its own per-domain limiter, and one typed
// cache per probe at the capacity/TTL §4.6 assigns it.
func New(cfg config.Config) *Engine {
	client := dns.NewClient(cfg.DNSProviders, cfg.DNSTimeoutDefault)
	breaker := dns.NewBreaker(client, cfg.FailureThreshold, cfg.SuccessThreshold, cfg.ResetTimeout)
	smtpLimiter := ratelimit.NewSMTPLimiter(cfg.RateSMTPPerDomain)
	prober := smtp.NewProber(smtpLimiter, cfg.SMTPTimeout)

	return &Engine{
		Resolver:    breaker,
		HTTPClient:  &http.Client{},
		SMTPProber:  prober,
		RDAPServers: reputation.RDAPServers(cfg.RDAPServers),
		DNSBLZones:  cfg.DNSBLZones,

		domainCache:     cache.Named[model.DomainCheck]("domain", 2000, 10*time.Minute),
		mxCache:         cache.Named[model.MXCheck]("mx", 2000, 5*time.Minute),
		blacklistCache:  cache.Named[model.BlacklistCheck]("blacklist", 1000, 30*time.Minute),
		catchAllCache:   cache.Named[model.CatchAllCheck]("catchall", 500, time.Hour),
		smtpCache:       cache.Named[model.SMTPCheck]("smtp", 1000, 5*time.Minute),
		authCache:       cache.Named[model.AuthCheck]("auth", 500, 10*time.Minute),
		reputationCache: cache.Named[model.ReputationCheck]("reputation", 500, 30*time.Minute),
		gravatarCache:   cache.Named[model.GravatarCheck]("gravatar", 500, time.Hour),
		resultCache:     cache.Named[model.ValidationResult]("result", 1000, 5*time.Minute),
		resultTTL:       5 * time.Minute,
		coalescer:       cache.NewCoalescer[model.ValidationResult](),

		ClientLimiter: ratelimit.NewNamedWindowLimiter("client-single", cfg.RateSinglePerMinute, time.Minute),
		BulkLimiter:   ratelimit.NewNamedWindowLimiter("client-bulk", cfg.RateBulkPerMinute, time.Minute),

		MaxBulkSize:       cfg.MaxBulkSize,
		BulkBatchSize:     cfg.BulkBatchSize,
		BulkBatchDelay:    cfg.BulkBatchDelay,
		BulkMaxTimeout:    cfg.BulkMaxTimeout,
		BulkMinTimeBuffer: cfg.BulkMinTimeBuffer,
	}
}
