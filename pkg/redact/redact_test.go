package redact

import (
	"strings"
	"testing"
)

func TestTextRedactsEmailAndPhoneWhenEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	out := Text("reach me at jane.doe@example.com or +40 721 555 123 please")
	if strings.Contains(out, "jane.doe@example.com") {
		t.Fatalf("email not redacted: %s", out)
	}
	if !strings.Contains(out, "[REDACTED_EMAIL]") || !strings.Contains(out, "[REDACTED_PHONE]") {
		t.Fatalf("expected redaction markers, got %s", out)
	}
}

func TestTextPassThroughWhenDisabled(t *testing.T) {
	SetEnabled(false)
	in := "reach me at jane.doe@example.com"
	if out := Text(in); out != in {
		t.Fatalf("expected pass-through, got %s", out)
	}
}

func TestSnippetTruncates(t *testing.T) {
	SetEnabled(false)
	in := strings.Repeat("a", 100)
	out := Snippet(in, 10)
	if out != strings.Repeat("a", 10)+"..." {
		t.Fatalf("unexpected snippet: %s", out)
	}
}

func TestSnippetRedactsWhenEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	out := Snippet("contact jane.doe@example.com today", 80)
	if strings.Contains(out, "example.com") {
		t.Fatalf("snippet leaked email: %s", out)
	}
}
