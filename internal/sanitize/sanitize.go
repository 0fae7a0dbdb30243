// Package sanitize normalises caller-supplied email input before it reaches
// the validation engine (C13). Every rule here is independently testable.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxLength = 254

var (
	htmlTagRe  = regexp.MustCompile(`<[^>]*>`)
	schemeRe   = regexp.MustCompile(`(?i)(javascript|vbscript|data|file):`)
	eventRe    = regexp.MustCompile(`(?i)on\w+\s*=`)
	expression = regexp.MustCompile(`(?i)expression\(`)
)

// String sanitises a single caller-supplied value, per §4.15. A non-string
// input is the caller's responsibility to coerce to "" before calling this;
// String itself only ever receives a string.
func String(in string) string {
	s := in

	s = stripControlBytes(s)
	s = htmlTagRe.ReplaceAllString(s, "")
	s = schemeRe.ReplaceAllString(s, "")
	s = eventRe.ReplaceAllString(s, "")
	s = expression.ReplaceAllString(s, "")
	s = norm.NFC.String(s)

	if len(s) > maxLength {
		s = s[:maxLength]
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s
}

// stripControlBytes removes U+0000..U+001F (except tab/LF/CR) and U+007F.
func stripControlBytes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == 0x09 || r == 0x0A || r == 0x0D {
			b.WriteRune(r)
			continue
		}
		if r <= 0x1F || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BatchReport describes what happened when sanitising an array of emails.
type BatchReport struct {
	Emails            []string
	DuplicatesRemoved int
	InvalidRemoved    int
}

const defaultArrayCap = 1000

// Batch sanitises a slice of emails: each entry is run through String, then
// deduplicated (stable, first-seen order), entries lacking "@" or shorter
// than 5 characters are dropped, and the result is capped at maxEntries (use
// 0 for the default of 1000).
func Batch(in []string, maxEntries int) BatchReport {
	if maxEntries <= 0 {
		maxEntries = defaultArrayCap
	}

	report := BatchReport{Emails: make([]string, 0, len(in))}
	seen := make(map[string]struct{}, len(in))

	for _, raw := range in {
		cleaned := String(raw)

		if !strings.Contains(cleaned, "@") || len(cleaned) < 5 {
			report.InvalidRemoved++
			continue
		}

		if _, dup := seen[cleaned]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[cleaned] = struct{}{}

		if len(report.Emails) >= maxEntries {
			continue
		}
		report.Emails = append(report.Emails, cleaned)
	}

	return report
}
