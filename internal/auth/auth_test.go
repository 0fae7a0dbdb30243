package auth

import (
	"context"
	"testing"
)

func TestCheckAggregatesScore(t *testing.T) {
	resolver := stubResolver{answers: map[string][]string{
		"example.com":             {"v=spf1 include:_spf.google.com -all"},
		"_dmarc.example.com":      {"v=DMARC1; p=reject; pct=100"},
		"default._domainkey.example.com": {"v=DKIM1; p=MIGf..."},
	}}

	result := Check(context.Background(), resolver, "example.com")

	if result.SPF != string(StrengthStrong) {
		t.Errorf("SPF = %q, want strong", result.SPF)
	}
	if result.DMARC != string(StrengthStrong) {
		t.Errorf("DMARC = %q, want strong", result.DMARC)
	}
	if len(result.DKIM) != 1 {
		t.Errorf("DKIM = %v, want 1 selector", result.DKIM)
	}
	want := 35 + 35 + 15
	if result.Score != want {
		t.Errorf("Score = %d, want %d", result.Score, want)
	}
}

func TestCheckNoRecordsYieldsZeroScore(t *testing.T) {
	resolver := stubResolver{answers: map[string][]string{}}
	result := Check(context.Background(), resolver, "example.com")
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}
