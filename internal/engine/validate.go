package engine

import (
	"context"
	"strings"
	"time"

	"emailengine/internal/model"
	"emailengine/internal/probe"
	"emailengine/internal/sanitize"
	"emailengine/pkg/monitoring"
)

// Validate implements §4.13's twelve-step orchestration: sanitise, consult
// the full-result cache (only when no optional probe is enabled, per the
// resolved cache-key asymmetry), coalesce concurrent identical calls, run
// syntax, fan out the format/MX/blacklist probes plus whichever optional
// probes opts enables, fold the result into a score/verdict, and cache it.
func (e *Engine) Validate(ctx context.Context, rawEmail string, opts Options) (model.ValidationResult, error) {
	opts = opts.withDefaults()
	email := sanitize.String(rawEmail)
	key := opts.cacheKey(email)

	if opts.enabledCount() == 0 {
		if cached, ok := e.resultCache.Get(key); ok {
			return cached.WithTimestamp(time.Now()), nil
		}
		if cached, ok := e.getFromBackingCache(ctx, key); ok {
			e.resultCache.Set(key, cached)
			return cached.WithTimestamp(time.Now()), nil
		}
	}

	return e.coalescer.Do(key, func() (model.ValidationResult, error) {
		return e.computeValidation(context.WithoutCancel(ctx), email, opts)
	})
}

func (e *Engine) computeValidation(ctx context.Context, email string, opts Options) (model.ValidationResult, error) {
	result := model.ValidationResult{Email: email, Timestamp: time.Now()}
	key := opts.cacheKey(email)

	valid, msg := probe.Syntax(email)
	result.Checks.Syntax = model.SyntaxCheck{Valid: valid, Message: msg}
	if !valid {
		result.IsValid = false
		result.Score = 0
		result.Deliverability = model.DeliverabilityUndeliverable
		result.Risk = model.RiskHigh
		result.Message = msg
		// Syntax failed before a domain even exists to probe: every other
		// check is skipped rather than left at its zero value, per §3.
		result.Checks.Domain = model.DomainCheck{State: model.ProbeSkipped}
		result.Checks.MX = model.MXCheck{State: model.ProbeSkipped}
		result.Checks.Disposable = model.DisposableCheck{State: model.ProbeSkipped}
		result.Checks.Role = model.RoleCheck{State: model.ProbeSkipped}
		result.Checks.FreeProvider = model.FreeProviderCheck{State: model.ProbeSkipped}
		result.Checks.Typo = model.TypoCheck{State: model.ProbeSkipped}
		result.Checks.Alias = model.AliasCheck{State: model.ProbeSkipped}
		result.Checks.Blacklist = model.BlacklistCheck{State: model.ProbeSkipped}
		result.Checks.CatchAll = model.CatchAllCheck{State: model.ProbeSkipped}
		monitoring.RecordValidationScore("syntax_invalid", 0)
		e.resultCache.Set(key, result)
		e.setBackingCache(ctx, key, result)
		return result, nil
	}

	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]

	var domainCheck model.DomainCheck
	var mxCheck model.MXCheck
	var blacklistCheck model.BlacklistCheck

	fan, fctx := newFanout(ctx, 3)
	fan.Go(func() error { domainCheck = e.checkDomainFormat(domain); return nil })
	fan.Go(func() error { mxCheck = e.checkMX(fctx, domain); return nil })
	fan.Go(func() error { blacklistCheck = e.checkBlacklist(fctx, domain); return nil })
	_ = fan.Wait()

	result.Checks.Domain = domainCheck
	result.Checks.MX = mxCheck
	result.Checks.Blacklist = blacklistCheck

	isDisposable := probe.Disposable(domain)
	result.Checks.Disposable = model.DisposableCheck{State: model.ProbeOK, IsDisposable: isDisposable}

	isRole, role := probe.Role(local)
	result.Checks.Role = model.RoleCheck{State: model.ProbeOK, IsRoleBased: isRole, Role: role}

	isFree, provider := probe.FreeProvider(domain)
	result.Checks.FreeProvider = model.FreeProviderCheck{State: model.ProbeOK, IsFree: isFree, Provider: provider}

	hasTypo, suggestion := probe.Typo(domain)
	result.Checks.Typo = model.TypoCheck{State: model.ProbeOK, HasTypo: hasTypo, Suggestion: suggestion}

	isAlias, canonicalAddr := probe.Alias(email)
	result.Checks.Alias = model.AliasCheck{State: model.ProbeOK, IsAlias: isAlias, Canonical: canonicalAddr}

	// catch-all has no independent static probe (it only ever comes out of
	// an SMTP dialog); reuse whatever a prior SMTP probe for this domain
	// already learned until a fresh SMTP probe runs below.
	if cached, ok := e.catchAllCache.Get(strings.ToLower(domain)); ok {
		result.Checks.CatchAll = cached
	}

	var smtpCheck *model.SMTPCheck
	var authCheck *model.AuthCheck
	var repCheck *model.ReputationCheck
	var gravCheck *model.GravatarCheck

	optFan, optCtx := newFanout(ctx, opts.enabledCount())

	if opts.SMTPCheck && mxCheck.Valid {
		optFan.Go(func() error {
			c := e.runSMTP(optCtx, email, domain, mxCheck.Records, time.Duration(opts.SMTPTimeoutMs)*time.Millisecond)
			smtpCheck = &c
			return nil
		})
	}
	if opts.AuthCheck && domainCheck.Valid {
		optFan.Go(func() error {
			c := e.runAuth(optCtx, domain, time.Duration(opts.AuthTimeoutMs)*time.Millisecond)
			authCheck = &c
			return nil
		})
	}
	if opts.ReputationCheck {
		optFan.Go(func() error {
			c := e.runReputation(optCtx, domain, time.Duration(opts.ReputationTimeoutMs)*time.Millisecond)
			repCheck = &c
			return nil
		})
	}
	if opts.GravatarCheck {
		optFan.Go(func() error {
			c := e.runGravatar(optCtx, email, time.Duration(opts.GravatarTimeoutMs)*time.Millisecond)
			gravCheck = &c
			return nil
		})
	}
	_ = optFan.Wait()

	result.Checks.SMTP = smtpCheck
	result.Checks.Auth = authCheck
	result.Checks.Reputation = repCheck
	result.Checks.Gravatar = gravCheck

	if smtpCheck != nil {
		result.Checks.CatchAll = model.CatchAllCheck{State: model.ProbeOK, CatchAll: smtpCheck.CatchAll}
		e.catchAllCache.Set(strings.ToLower(domain), result.Checks.CatchAll)
	}

	v := baseVerdict(result.Checks)
	if smtpCheck != nil {
		applySMTP(&v, smtpCheck)
	}
	if authCheck != nil {
		applyAuth(&v, authCheck)
	}
	if repCheck != nil {
		applyReputation(&v, repCheck)
	}

	result.Score = v.Score
	result.IsValid = v.IsValid
	result.Deliverability = v.Deliverability
	result.Risk = v.Risk
	monitoring.RecordValidationScore("full", float64(v.Score))

	e.resultCache.Set(key, result)
	e.setBackingCache(ctx, key, result)
	return result, nil
}

// getFromBackingCache consults the optional second-tier cache. A nil
// ResultBackingCache, a decode error, or a miss all report ok=false;
// the backing store is a best-effort accelerator, never a source of truth
// the orchestrator depends on.
func (e *Engine) getFromBackingCache(ctx context.Context, key string) (model.ValidationResult, bool) {
	if e.ResultBackingCache == nil {
		return model.ValidationResult{}, false
	}
	var result model.ValidationResult
	if err := e.ResultBackingCache.Get(ctx, key, &result); err != nil {
		return model.ValidationResult{}, false
	}
	return result, true
}

func (e *Engine) setBackingCache(ctx context.Context, key string, result model.ValidationResult) {
	if e.ResultBackingCache == nil {
		return
	}
	_ = e.ResultBackingCache.Set(ctx, key, result, e.resultTTL)
}
