package sanitize

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and lowercases", "  User@Example.COM  ", "user@example.com"},
		{"strips html tags", "<b>user@example.com</b>", "user@example.com"},
		{"strips javascript scheme", "javascript:alert(1)user@example.com", "alert(1)user@example.com"},
		{"strips event handler", "user@example.com onload=alert(1)", "user@example.com alert(1)"},
		{"strips control bytes", "user@example.com\x00\x1f", "user@example.com"},
		{"keeps tab/lf/cr", "a\tb\nc\rd", "a\tb\nc\rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.in)
			if got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringTruncates(t *testing.T) {
	long := "a@" + string(make([]byte, 300))
	got := String(long)
	if len(got) > maxLength {
		t.Errorf("String() returned length %d, want <= %d", len(got), maxLength)
	}
}

func TestBatch(t *testing.T) {
	in := []string{"a@gmail.com", "A@Gmail.com", "", "b@yahoo.com", "short"}
	report := Batch(in, 0)

	if len(report.Emails) != 2 {
		t.Fatalf("Emails = %v, want 2 entries", report.Emails)
	}
	if report.Emails[0] != "a@gmail.com" || report.Emails[1] != "b@yahoo.com" {
		t.Errorf("Emails = %v, want [a@gmail.com b@yahoo.com]", report.Emails)
	}
	if report.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", report.DuplicatesRemoved)
	}
	if report.InvalidRemoved != 2 {
		t.Errorf("InvalidRemoved = %d, want 2", report.InvalidRemoved)
	}
}

func TestBatchCap(t *testing.T) {
	in := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		in = append(in, string(rune('a'+i))+"@example.com")
	}
	report := Batch(in, 3)
	if len(report.Emails) != 3 {
		t.Errorf("Emails length = %d, want 3", len(report.Emails))
	}
}
