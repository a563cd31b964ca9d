package errorsx

import "testing"

func TestWrapAndReason(t *testing.T) {
	err := Wrap(assertErr{}, ReasonGenAIGenerate)
	if Reason(err) != ReasonGenAIGenerate {
		t.Fatalf("expected reason %s, got %s", ReasonGenAIGenerate, Reason(err))
	}
	if !HasReason(err, ReasonGenAIGenerate) {
		t.Fatalf("expected HasReason true")
	}
}

func TestWrapPreservesExistingReason(t *testing.T) {
	first := Wrap(assertErr{}, ReasonSTTRecognize)
	second := Wrap(first, ReasonGenAIGenerate)
	if Reason(second) != ReasonSTTRecognize {
		t.Fatalf("expected reason preserved, got %s", Reason(second))
	}
}

func TestNewCarriesReasonAndMessage(t *testing.T) {
	err := New(ReasonSTTNoResults, "speech provider returned zero results")
	if Reason(err) != ReasonSTTNoResults {
		t.Fatalf("expected reason %s, got %s", ReasonSTTNoResults, Reason(err))
	}
	if err.Error() != "speech provider returned zero results" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
