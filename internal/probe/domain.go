package probe

import "strings"

// DomainFormat validates a domain's shape only (C1c): no network I/O, no
// existence check. It reuses the same label grammar as Syntax's domain
// half, since the spec is explicit that a single permissive grammar governs
// both. Existence is reported optimistically and settled later by the MX
// probe.
func DomainFormat(domain string) (valid bool, message string) {
	d := strings.ToLower(strings.TrimSpace(domain))

	if d == "" || len(d) > maxDomainLength {
		return false, "domain must be between 1 and 253 characters"
	}
	if strings.Contains(d, "..") {
		return false, "domain contains consecutive dots"
	}
	if strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
		return false, "domain cannot start or end with a dot"
	}
	if strings.HasPrefix(d, "-") || strings.HasSuffix(d, "-") {
		return false, "domain cannot start or end with a hyphen"
	}

	if ipLitRe.MatchString(d) {
		return true, ""
	}

	if !strings.Contains(d, ".") {
		return false, "domain must contain at least one dot"
	}
	labels := strings.Split(d, ".")
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false, "top-level domain must be at least 2 characters"
	}
	for _, label := range labels {
		if !labelRe.MatchString(label) {
			return false, "domain contains an invalid label"
		}
	}
	return true, ""
}
