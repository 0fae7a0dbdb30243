package probe

import "strings"

import "testing"

func TestSyntaxBasic(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple valid", "user@example.com", true},
		{"dotted local", "first.last@example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"no at", "invalid-email", false},
		{"two ats", "a@b@example.com", false},
		{"consecutive dots local", "a..b@example.com", false},
		{"consecutive dots domain", "a@example..com", false},
		{"leading dot local", ".a@example.com", false},
		{"trailing dot domain", "a@example.com.", false},
		{"leading hyphen domain", "a@-example.com", false},
		{"trailing hyphen domain", "a@example.com-", false},
		{"no dot in domain", "a@localhost", false},
		{"short tld", "a@example.c", false},
		{"ipv4 literal", "a@[192.168.1.1]", true},
		{"quoted local", `"a b"@example.com`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := Syntax(tt.email)
			if valid != tt.want {
				t.Errorf("Syntax(%q) = (%v, %q), want valid=%v", tt.email, valid, msg, tt.want)
			}
		})
	}
}

func TestSyntaxLengthBoundaries(t *testing.T) {
	// 254-char total: local(64) + '@' + domain(189), the domain padded with
	// labels of at most 63 chars so only the total length is at its limit
	local64 := strings.Repeat("a", 64)
	domain := "example.com"
	padding := 254 - len(local64) - 1 - len(domain)
	label := strings.Repeat("x", 59) + "."
	domain = label + label + strings.Repeat("x", padding-2*len(label)-1) + "." + domain

	email254 := local64 + "@" + domain
	if len(email254) != 254 {
		t.Fatalf("test setup: email254 has length %d, want 254", len(email254))
	}
	if valid, msg := Syntax(email254); !valid {
		t.Errorf("Syntax(254 chars) = (%v, %q), want valid", valid, msg)
	}

	email255 := email254 + "x"
	if valid, _ := Syntax(email255); valid {
		t.Errorf("Syntax(255 chars) = valid, want invalid")
	}

	local65 := strings.Repeat("a", 65)
	if valid, _ := Syntax(local65 + "@example.com"); valid {
		t.Errorf("Syntax(65-char local) = valid, want invalid")
	}
}

func TestSyntaxMessageContainsAt(t *testing.T) {
	_, msg := Syntax("invalid-email")
	if !strings.Contains(msg, "@") {
		t.Errorf("message %q does not mention @", msg)
	}
}

func TestSyntaxMessageContains64(t *testing.T) {
	_, msg := Syntax(strings.Repeat("a", 65) + "@example.com")
	if !strings.Contains(msg, "64") {
		t.Errorf("message %q does not mention 64", msg)
	}
}
