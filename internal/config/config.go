// Package config centralizes the process-level knobs the engine reads at
// startup. Every field has a hard-coded default so FromEnv never fails; it
// only overrides a field when its env var is set and parses cleanly,
// otherwise it logs a warning and keeps the default — same tolerant style as
// the teacher's main.go REDIS_URL/PORT lookups.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the engine's process-level knobs. The per-cache capacities
// and TTLs are not among them: engine.New fixes them at construction.
type Config struct {
	// Bulk runner
	MaxBulkSize         int
	BulkBatchSize        int
	BulkBatchDelay       time.Duration
	BulkMaxTimeout       time.Duration
	BulkMinTimeBuffer    time.Duration

	// Rate limits
	RateSinglePerMinute int
	RateBulkPerMinute   int
	RateSMTPPerDomain   int

	// Circuit breaker
	FailureThreshold int
	SuccessThreshold int
	ResetTimeout     time.Duration

	// Probe timeouts (defaults; caller options may override per-call)
	SMTPTimeout       time.Duration
	AuthTimeout       time.Duration
	ReputationTimeout time.Duration
	GravatarTimeout   time.Duration
	DNSTimeoutDNSBL   time.Duration
	DNSTimeoutDefault time.Duration

	// DNS providers, tried in order
	DNSProviders []string

	// DNSBL zones checked by the reputation probe
	DNSBLZones []string

	// RDAP servers keyed by TLD
	RDAPServers map[string]string
}

// Default returns the engine's hard-coded defaults, per spec.md §6.
func Default() Config {
	return Config{
		MaxBulkSize:       1000,
		BulkBatchSize:     50,
		BulkBatchDelay:    50 * time.Millisecond,
		BulkMaxTimeout:    30 * time.Second,
		BulkMinTimeBuffer: 5 * time.Second,

		RateSinglePerMinute: 100,
		RateBulkPerMinute:   10,
		RateSMTPPerDomain:   5,

		FailureThreshold: 5,
		SuccessThreshold: 2,
		ResetTimeout:     30 * time.Second,

		SMTPTimeout:       10 * time.Second,
		AuthTimeout:       10 * time.Second,
		ReputationTimeout: 15 * time.Second,
		GravatarTimeout:   5 * time.Second,
		DNSTimeoutDNSBL:   3 * time.Second,
		DNSTimeoutDefault: 5 * time.Second,

		DNSProviders: []string{"dns.google", "cloudflare-dns.com"},

		DNSBLZones: []string{
			"dbl.spamhaus.org",
			"multi.surbl.org",
			"multi.uribl.com",
		},

		RDAPServers: map[string]string{
			"com": "https://rdap.verisign.com/com/v1/domain",
			"net": "https://rdap.verisign.com/net/v1/domain",
			"org": "https://rdap.pir.org/domain",
			"io":  "https://rdap.nic.io/domain",
			"co":  "https://rdap.nic.co/domain",
			"me":  "https://rdap.nic.me/domain",
			"dev": "https://www.registry.google/rdap/domain",
			"app": "https://www.registry.google/rdap/domain",
		},
	}
}

// FromEnv returns Default() with any recognised environment variable
// overrides applied. Unparseable values are logged and ignored.
func FromEnv() Config {
	c := Default()

	overrideInt(&c.MaxBulkSize, "MAX_BULK_SIZE")
	overrideInt(&c.BulkBatchSize, "BULK_BATCH_SIZE")
	overrideDurationMs(&c.BulkBatchDelay, "BULK_BATCH_DELAY_MS")
	overrideDurationMs(&c.BulkMaxTimeout, "BULK_MAX_TIMEOUT_MS")
	overrideDurationMs(&c.BulkMinTimeBuffer, "BULK_MIN_TIME_BUFFER_MS")

	overrideInt(&c.RateSinglePerMinute, "RATE_SINGLE")
	overrideInt(&c.RateBulkPerMinute, "RATE_BULK")
	overrideInt(&c.RateSMTPPerDomain, "RATE_SMTP_PER_DOMAIN")

	overrideInt(&c.FailureThreshold, "CIRCUIT_FAILURE_THRESHOLD")
	overrideInt(&c.SuccessThreshold, "CIRCUIT_SUCCESS_THRESHOLD")
	overrideDurationMs(&c.ResetTimeout, "CIRCUIT_RESET_TIMEOUT_MS")

	return c
}

func overrideInt(dst *int, envVar string) {
	v := os.Getenv(envVar)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring malformed %s=%q: %v", envVar, v, err)
		return
	}
	*dst = n
}

func overrideDurationMs(dst *time.Duration, envVar string) {
	v := os.Getenv(envVar)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring malformed %s=%q: %v", envVar, v, err)
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}
