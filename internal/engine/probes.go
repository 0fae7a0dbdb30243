package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"emailengine/internal/auth"
	"emailengine/internal/dns"
	"emailengine/internal/gravatar"
	"emailengine/internal/model"
	"emailengine/internal/probe"
	"emailengine/internal/reputation"
	"emailengine/internal/smtp"
	"emailengine/pkg/monitoring"
)

// rdapTimeout is §4.11's hard-coded RDAP HTTP timeout; distinct from the
// caller-configurable ReputationTimeoutMs that bounds the whole probe.
const rdapTimeout = 5 * time.Second

func (e *Engine) checkDomainFormat(domain string) model.DomainCheck {
	d := strings.ToLower(domain)
	if cached, ok := e.domainCache.Get(d); ok {
		return cached
	}
	valid, msg := probe.DomainFormat(d)
	check := model.DomainCheck{State: model.ProbeOK, Valid: valid, Exists: valid, Message: msg}
	e.domainCache.Set(d, check)
	return check
}

func (e *Engine) checkMX(ctx context.Context, domain string) model.MXCheck {
	d := strings.ToLower(domain)
	if cached, ok := e.mxCache.Get(d); ok {
		return cached
	}

	hosts, ok, err := dns.MXHosts(ctx, e.Resolver, d)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, dns.ErrCircuitOpen) {
			msg = "DNS unavailable"
		}
		return model.MXCheck{State: model.ProbeFailed, Message: msg}
	}

	var check model.MXCheck
	if !ok {
		check = model.MXCheck{State: model.ProbeOK, Valid: false, Message: "no MX or A records found"}
	} else {
		check = model.MXCheck{State: model.ProbeOK, Valid: true, Records: hosts}
	}
	e.mxCache.Set(d, check)
	return check
}

func (e *Engine) checkBlacklist(ctx context.Context, domain string) model.BlacklistCheck {
	d := strings.ToLower(domain)
	if cached, ok := e.blacklistCache.Get(d); ok {
		return cached
	}
	listed := reputation.CheckBlocklists(ctx, e.Resolver, e.DNSBLZones, d)
	check := model.BlacklistCheck{State: model.ProbeOK, Blacklisted: len(listed) > 0, Lists: listed}
	e.blacklistCache.Set(d, check)
	return check
}

func (e *Engine) runSMTP(ctx context.Context, email, domain string, mxHosts []string, timeout time.Duration) model.SMTPCheck {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	defer recordProbeDuration("smtp", time.Now())
	return smtp.CachedProbe(ctx, e.SMTPProber, e.smtpCache, email, mxHosts)
}

func (e *Engine) runAuth(ctx context.Context, domain string, timeout time.Duration) model.AuthCheck {
	d := strings.ToLower(domain)
	if cached, ok := e.authCache.Get(d); ok {
		return cached
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	defer recordProbeDuration("auth", time.Now())
	check := auth.Check(ctx, e.Resolver, d)
	e.authCache.Set(d, check)
	return check
}

func (e *Engine) runReputation(ctx context.Context, domain string, timeout time.Duration) model.ReputationCheck {
	d := strings.ToLower(domain)
	if cached, ok := e.reputationCache.Get(d); ok {
		return cached
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	defer recordProbeDuration("reputation", time.Now())
	check := reputation.Check(ctx, e.HTTPClient, e.Resolver, e.RDAPServers, e.DNSBLZones, d, rdapTimeout)
	e.reputationCache.Set(d, check)
	return check
}

func (e *Engine) runGravatar(ctx context.Context, email string, timeout time.Duration) model.GravatarCheck {
	key := strings.ToLower(email)
	if cached, ok := e.gravatarCache.Get(key); ok {
		return cached
	}
	defer recordProbeDuration("gravatar", time.Now())
	check := gravatar.Check(ctx, e.HTTPClient, email, timeout)
	e.gravatarCache.Set(key, check)
	return check
}

func recordProbeDuration(probe string, start time.Time) {
	monitoring.RecordProbeDuration(probe, time.Since(start))
}
