package services

import "testing"

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"iphone 13 pro", "Iphone 13 Pro"},
		{"  spaced   out  ", "Spaced Out"},
		{"ALL CAPS", "All Caps"},
		{"x", "X"},
		{"éclair au café", "Éclair Au Café"},
		{"", ""},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Errorf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUpperName(t *testing.T) {
	if got := UpperName("  nike "); got != "NIKE" {
		t.Errorf("UpperName = %q, want NIKE", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
