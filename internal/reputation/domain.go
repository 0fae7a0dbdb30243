package reputation

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// registrableDomain returns domain's eTLD+1 (e.g. "mail.corp.example.co.uk"
// -> "example.co.uk"), falling back to the input unchanged when the public
// suffix list has no opinion on it.
func registrableDomain(domain string) string {
	reg, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(domain))
	if err != nil {
		return strings.ToLower(domain)
	}
	return reg
}
