package auth

import "strings"

// DMARCRecord is a parsed "v=DMARC1; ..." TXT record.
type DMARCRecord struct {
	Policy       string // p
	SubPolicy    string // sp
	Percent      string // pct
	ReportURI    string // rua
	ForensicURI  string // ruf
	DKIMAlign    string // adkim
	SPFAlign     string // aspf
	Strength     Strength
}

// ParseDMARC parses the raw TXT record text (already selected as the one
// starting with "v=DMARC1") and derives a strength per §4.10: p=reject is
// strong, p=quarantine is moderate, p=none with rua/ruf set is weak,
// p=none with neither is none.
func ParseDMARC(record string) DMARCRecord {
	tags := parseTagList(record)

	rec := DMARCRecord{
		Policy:      tags["p"],
		SubPolicy:   tags["sp"],
		Percent:     tags["pct"],
		ReportURI:   tags["rua"],
		ForensicURI: tags["ruf"],
		DKIMAlign:   tags["adkim"],
		SPFAlign:    tags["aspf"],
	}
	rec.Strength = dmarcStrength(rec)
	return rec
}

func dmarcStrength(rec DMARCRecord) Strength {
	switch strings.ToLower(rec.Policy) {
	case "reject":
		return StrengthStrong
	case "quarantine":
		return StrengthModerate
	case "none":
		if rec.ReportURI != "" || rec.ForensicURI != "" {
			return StrengthWeak
		}
		return StrengthNone
	default:
		return StrengthNone
	}
}

// parseTagList splits a "v=DMARC1; p=reject; pct=100" style record into a
// tag->value map, tolerating missing spaces around semicolons.
func parseTagList(record string) map[string]string {
	tags := make(map[string]string)
	for _, part := range strings.Split(record, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		tags[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return tags
}
