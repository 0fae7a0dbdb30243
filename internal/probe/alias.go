package probe

import (
	"regexp"
	"strings"
)

// aliasProvider detects and canonicalizes one mailbox provider's alias
// convention (Gmail dots/plus, Yahoo hyphen, Outlook plus).
type aliasProvider interface {
	isAlias(localPart string) bool
	canonical(localPart, domain string) string
}

var aliasProviders = map[string]aliasProvider{
	"gmail.com":      gmailAlias{},
	"googlemail.com": gmailAlias{},
	"yahoo.com":      yahooAlias{},
	"outlook.com":    outlookAlias{},
	"hotmail.com":    outlookAlias{},
	"live.com":       outlookAlias{},
}

// Alias reports whether email's local part is a known alias convention for
// its domain and, if so, the canonical address it resolves to. Gmail and
// Outlook ignore everything after a leading "+"; Gmail also ignores dots.
// Yahoo's "base-tag@yahoo.com" form canonicalizes to "base@yahoo.com".
func Alias(email string) (isAlias bool, canonical string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false, ""
	}
	local, domain := email[:at], strings.ToLower(email[at+1:])

	provider, ok := aliasProviders[domain]
	if !ok {
		return false, ""
	}
	if !provider.isAlias(local) {
		return false, ""
	}
	return true, provider.canonical(local, domain)
}

type gmailAlias struct{}

func (gmailAlias) isAlias(local string) bool {
	return strings.Contains(local, ".") || strings.Contains(local, "+")
}

func (gmailAlias) canonical(local, _ string) string {
	if idx := strings.Index(local, "+"); idx != -1 {
		local = local[:idx]
	}
	local = strings.ReplaceAll(local, ".", "")
	return local + "@gmail.com"
}

type yahooAlias struct{}

var yahooAliasRe = regexp.MustCompile(`^([^-]+)-([^@]+)$`)

func (yahooAlias) isAlias(local string) bool {
	return yahooAliasRe.MatchString(local)
}

func (yahooAlias) canonical(local, domain string) string {
	if m := yahooAliasRe.FindStringSubmatch(local); m != nil {
		return m[1] + "@" + domain
	}
	return local + "@" + domain
}

type outlookAlias struct{}

func (outlookAlias) isAlias(local string) bool {
	return strings.Contains(local, "+")
}

func (outlookAlias) canonical(local, domain string) string {
	if idx := strings.Index(local, "+"); idx != -1 {
		local = local[:idx]
	}
	return local + "@" + domain
}
