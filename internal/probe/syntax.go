// Package probe implements the engine's pure, non-blocking checks: syntax,
// disposable/role/free-provider/typo lookups against in-process static data.
package probe

import (
	"regexp"
	"strings"
)

const (
	maxEmailLength = 254
	maxLocalLength = 64
	maxDomainLength = 253
)

var (
	// atomChar matches one unquoted local-part atom character, per the
	// permissive RFC-5322-ish grammar of §4.1 step 7.
	atomRe = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+$`)
	quotedRe = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"$`)
	labelRe  = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
	ipLitRe  = regexp.MustCompile(`^\[(?:\d{1,3}\.){3}\d{1,3}\]$`)
)

// Syntax validates email syntax, returning the first rule that fails. The
// message strings are part of the public contract: callers assert on
// substrings like "@" and "64".
func Syntax(raw string) (valid bool, message string) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return false, "email address is empty"
	}

	if len(email) > maxEmailLength {
		return false, "email address exceeds 254 characters"
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || strings.Count(email, "@") != 1 {
		return false, "email address must contain exactly one @"
	}

	local, domain := email[:at], email[at+1:]

	if len(local) < 1 || len(local) > maxLocalLength {
		return false, "local part must be between 1 and 64 characters"
	}
	if len(domain) < 1 || len(domain) > maxDomainLength {
		return false, "domain must be between 1 and 253 characters"
	}

	if strings.Contains(local, "..") || strings.Contains(domain, "..") {
		return false, "email address contains consecutive dots"
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false, "local part cannot start or end with a dot"
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false, "domain cannot start or end with a dot"
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false, "domain cannot start or end with a hyphen"
	}

	if !ipLitRe.MatchString(domain) {
		if !strings.Contains(domain, ".") {
			return false, "domain must contain at least one dot"
		}
		labels := strings.Split(domain, ".")
		tld := labels[len(labels)-1]
		if len(tld) < 2 {
			return false, "top-level domain must be at least 2 characters"
		}
		for _, label := range labels {
			if !labelRe.MatchString(label) {
				return false, "domain contains an invalid label"
			}
		}
	}

	if !matchesGrammar(local, domain) {
		return false, "email address does not match the expected syntax"
	}

	return true, ""
}

// matchesGrammar implements §4.1 step 7: the local part is a dot-separated
// sequence of unquoted atoms, or a single quoted string; the domain is
// labels-plus-TLD (already shape-checked above) or a bracketed IPv4 literal.
func matchesGrammar(local, domain string) bool {
	if !quotedRe.MatchString(local) {
		for _, atom := range strings.Split(local, ".") {
			if atom == "" || !atomRe.MatchString(atom) {
				return false
			}
		}
	}

	if ipLitRe.MatchString(domain) {
		return true
	}
	for _, label := range strings.Split(domain, ".") {
		if !labelRe.MatchString(label) {
			return false
		}
	}
	return true
}
