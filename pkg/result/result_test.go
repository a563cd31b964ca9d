package result

import (
	"errors"
	"testing"
)

func TestOkCarriesValue(t *testing.T) {
	r := Ok("transcript")
	if !r.OK() {
		t.Fatalf("expected OK")
	}
	if r.Value() != "transcript" {
		t.Fatalf("unexpected value: %s", r.Value())
	}
	if r.Err() != nil {
		t.Fatalf("expected nil err on success")
	}
}

func TestFailCarriesError(t *testing.T) {
	cause := errors.New("provider down")
	r := Fail[string](cause)
	if r.OK() {
		t.Fatalf("expected failure")
	}
	if r.Value() != "" {
		t.Fatalf("expected zero value, got %q", r.Value())
	}
	if !errors.Is(r.Err(), cause) {
		t.Fatalf("expected cause preserved")
	}
}

func TestZeroValueIsFailure(t *testing.T) {
	var r Result[int]
	if r.OK() {
		t.Fatalf("zero value must be a failure")
	}
}
