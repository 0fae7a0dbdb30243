// Package auth implements the engine's authentication probe (C8): SPF,
// DMARC, and DKIM-selector checks run in parallel over TXT lookups.
// Domain normalization borrows mailspire-spf's use of golang.org/x/net/idna
// to convert Unicode domains to their ASCII/Punycode form before querying.
package auth

import (
	"strings"

	"golang.org/x/net/idna"
)

// Strength buckets an authentication mechanism's assertion.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
	StrengthNone     Strength = "none"
)

// Mechanism is one parsed SPF term: a qualified mechanism (+/-/~/? prefix)
// or a modifier (name=value).
type Mechanism struct {
	Qualifier byte // '+', '-', '~', '?'; '+' is implicit when absent
	Name      string
	Value     string
	IsModifier bool
}

// SPFRecord is a parsed "v=spf1 ..." TXT record.
type SPFRecord struct {
	Mechanisms []Mechanism
	Strength   Strength
}

// ParseSPF parses the raw TXT record text (already selected as the one
// starting with "v=spf1") into its mechanisms and derives a strength per
// §4.10: "-all"=strong, "~all"=moderate, "?all"/"+all"/missing all/parse
// errors=weak.
func ParseSPF(record string) SPFRecord {
	fields := strings.Fields(record)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "v=spf1") {
		return SPFRecord{Strength: StrengthWeak}
	}

	var mechanisms []Mechanism
	for _, field := range fields[1:] {
		mechanisms = append(mechanisms, parseTerm(field))
	}

	return SPFRecord{
		Mechanisms: mechanisms,
		Strength:   allStrength(mechanisms),
	}
}

func parseTerm(field string) Mechanism {
	if idx := strings.IndexByte(field, '='); idx > 0 && isModifierName(field[:idx]) {
		return Mechanism{Name: field[:idx], Value: field[idx+1:], IsModifier: true}
	}

	qualifier := byte('+')
	name := field
	if len(field) > 0 {
		switch field[0] {
		case '+', '-', '~', '?':
			qualifier = field[0]
			name = field[1:]
		}
	}
	return Mechanism{Qualifier: qualifier, Name: name}
}

func isModifierName(name string) bool {
	return strings.EqualFold(name, "redirect") || strings.EqualFold(name, "exp")
}

func allStrength(mechanisms []Mechanism) Strength {
	for _, m := range mechanisms {
		if m.IsModifier || !strings.EqualFold(m.Name, "all") {
			continue
		}
		switch m.Qualifier {
		case '-':
			return StrengthStrong
		case '~':
			return StrengthModerate
		default:
			return StrengthWeak
		}
	}
	return StrengthWeak
}

// NormalizeDomain converts a possibly-Unicode domain to its ASCII form for
// DNS lookups, returning the input unchanged if it is not valid IDNA (the
// caller's subsequent lookup will then simply fail to find a record).
func NormalizeDomain(domain string) string {
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return domain
	}
	return ascii
}
