package lang

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "en"},
		{"  ", "en"},
		{"EN", "en"},
		{"ro-ro", "ro-RO"},
		{"RO_ro", "ro-RO"},
		{"en-US", "en-US"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBase(t *testing.T) {
	if got := Base("ro-RO"); got != "ro" {
		t.Fatalf("Base(ro-RO) = %q", got)
	}
	if got := Base(""); got != "en" {
		t.Fatalf("Base(empty) = %q", got)
	}
}
