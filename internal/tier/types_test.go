package tier

import (
	"errors"
	"testing"
)

func TestTraceString(t *testing.T) {
	tr := Trace{
		{Name: "classify", Detail: "classified as Strategy"},
		{Name: "generate", Detail: "generated plan"},
	}

	want := "1. classified as Strategy\n2. generated plan"
	if got := tr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if names := tr.Names(); len(names) != 2 || names[1] != "generate" {
		t.Errorf("unexpected names %v", names)
	}
	if Trace(nil).String() != "" {
		t.Errorf("empty trace should render empty")
	}
}

func TestFail(t *testing.T) {
	cause := errors.New("index offline")
	res := Fail(SystemDeepMind, "knowledge", Trace{{Name: "classify"}}, cause)

	if res.Status != StatusFailed {
		t.Fatalf("expected failed status, got %s", res.Status)
	}
	var terr *Error
	if !errors.As(res.Err, &terr) {
		t.Fatalf("expected *Error, got %T", res.Err)
	}
	if terr.Stage != "knowledge" || !errors.Is(res.Err, cause) {
		t.Errorf("unexpected error %v", res.Err)
	}
	if res.Content != "" {
		t.Errorf("failed result must not carry content")
	}
}
