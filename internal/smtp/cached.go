package smtp

import (
	"context"
	"strings"

	"emailengine/internal/cache"
	"emailengine/internal/model"
)

// CachedProbe wraps a Prober with the SMTP cache (C4), keyed by lowered
// email. Per §4.9 steps 1 and 6: a recent definitive answer short-circuits
// the dialog entirely, and only definitive/catch-all/greylisted answers are
// worth remembering.
func CachedProbe(ctx context.Context, prober *Prober, smtpCache *cache.Cache[model.SMTPCheck], email string, mxHosts []string) model.SMTPCheck {
	key := strings.ToLower(email)

	if cached, ok := smtpCache.Get(key); ok {
		return cached
	}

	result := prober.Probe(ctx, email, mxHosts)
	if isDefinitive(result) {
		smtpCache.Set(key, result)
	}
	return result
}

func isDefinitive(c model.SMTPCheck) bool {
	return c.Exists == "true" || c.Exists == "false" || c.CatchAll || c.Greylisted
}
