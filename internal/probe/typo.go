package probe

import (
	"strings"

	"emailengine/internal/levenshtein"
)

// typoMap is a direct table of known misspellings, generalizing the
// teacher's GetTypoSuggestions commonDomains map.
var typoMap = map[string]string{
	"gmial.com":  "gmail.com",
	"gmal.com":   "gmail.com",
	"gamil.com":  "gmail.com",
	"gmai.com":   "gmail.com",
	"gnail.com":  "gmail.com",
	"yaho.com":   "yahoo.com",
	"yahooo.com": "yahoo.com",
	"yhaoo.com":  "yahoo.com",
	"hotmai.com": "hotmail.com",
	"hotmal.com": "hotmail.com",
	"hotnail.com": "hotmail.com",
	"outlok.com": "outlook.com",
	"outloo.com": "outlook.com",
}

// canonicalDomains is the small reference set the edit-distance fallback
// measures against, per §4.2.
var canonicalDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"icloud.com",
	"aol.com",
	"protonmail.com",
	"live.com",
	"ymail.com",
}

const typoDistanceThreshold = 2

// Typo reports whether domain looks like a misspelling of a well-known
// provider, and if so the suggested correction. Checks, in order: the
// direct map, a bare-TLD typo rewrite (e.g. "gmail.comm" -> "gmail.com"),
// then edit distance <=2 against the canonical set.
func Typo(domain string) (hasTypo bool, suggestion string) {
	d := strings.ToLower(domain)

	if correct, ok := typoMap[d]; ok {
		return true, correct
	}

	if correct, ok := bareTLDTypo(d); ok {
		return true, correct
	}

	best := typoDistanceThreshold + 1
	bestMatch := ""
	for _, canonical := range canonicalDomains {
		if d == canonical {
			return false, ""
		}
		dist := levenshtein.Distance(d, canonical)
		if dist < best {
			best = dist
			bestMatch = canonical
		}
	}
	if bestMatch != "" && best <= typoDistanceThreshold {
		return true, bestMatch
	}

	return false, ""
}

// bareTLDTypo rewrites only the TLD when the rest of the domain exactly
// matches a canonical provider's base label, e.g. "gmail.comm" -> "gmail.com".
func bareTLDTypo(domain string) (string, bool) {
	lastDot := strings.LastIndex(domain, ".")
	if lastDot < 0 {
		return "", false
	}
	base := domain[:lastDot]

	for _, canonical := range canonicalDomains {
		canonicalDot := strings.LastIndex(canonical, ".")
		if canonicalDot < 0 {
			continue
		}
		canonicalBase := canonical[:canonicalDot]
		if base == canonicalBase && domain != canonical {
			return canonical, true
		}
	}
	return "", false
}
