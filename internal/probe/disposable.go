package probe

import "strings"

// disposableDomains is a static set of known disposable-email providers,
// generalizing the teacher's NewDisposableValidator map to also match
// subdomains of a listed root (e.g. "foo.mailinator.com").
var disposableDomains = map[string]struct{}{
	"mailinator.com":        {},
	"guerrillamail.com":     {},
	"guerrillamail.info":    {},
	"10minutemail.com":      {},
	"10minutemail.net":      {},
	"tempmail.com":          {},
	"temp-mail.org":         {},
	"throwawaymail.com":     {},
	"yopmail.com":           {},
	"trashmail.com":         {},
	"getnada.com":           {},
	"fakeinbox.com":         {},
	"sharklasers.com":       {},
	"dispostable.com":       {},
	"maildrop.cc":           {},
	"mintemail.com":         {},
	"mailnesia.com":         {},
	"spamgourmet.com":       {},
	"discard.email":         {},
	"emailondeck.com":       {},
}

// disposablePatterns catches disposable providers not in the static set: a
// leading label of temp/fake/throw, any minute-mail variant, and the
// mailinator/guerrilla families under unrelated TLDs.
var disposablePatterns = []string{
	"temp",
	"fake",
	"throw",
	"mailinator",
	"guerrilla",
}

// Disposable reports whether domain belongs to a disposable email provider.
// Matching is case-insensitive and also covers subdomains of a listed root.
func Disposable(domain string) bool {
	d := strings.ToLower(domain)

	if _, ok := disposableDomains[d]; ok {
		return true
	}
	for root := range disposableDomains {
		if strings.HasSuffix(d, "."+root) {
			return true
		}
	}

	labels := strings.Split(d, ".")
	lead := labels[0]
	for _, pattern := range disposablePatterns {
		if strings.Contains(lead, pattern) {
			return true
		}
	}
	if matchesMinuteMail(d) {
		return true
	}

	return false
}

// matchesMinuteMail recognises the "N minute mail" family, e.g.
// "10minutemail.com", "20minutemail.net", "minutemail.com".
func matchesMinuteMail(domain string) bool {
	idx := strings.Index(domain, "minute")
	if idx < 0 {
		return false
	}
	rest := domain[idx+len("minute"):]
	return strings.HasPrefix(rest, "mail")
}
