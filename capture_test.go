package basil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInvokePass(t *testing.T) {
	out := invoke(func() error { return nil })
	if out.Kind != Passed {
		t.Fatalf("outcome = %v, want passed", out.Kind)
	}
}

func TestInvokeErrorReturn(t *testing.T) {
	out := invoke(func() error { return errors.New("assertion mismatch") })
	if out.Kind != Failed {
		t.Fatalf("outcome = %v, want failed", out.Kind)
	}
	if out.Message != "assertion mismatch" {
		t.Errorf("message = %q", out.Message)
	}
	if out.Origin != "unknown" {
		t.Errorf("origin = %q, want unknown", out.Origin)
	}
}

func TestInvokePendingError(t *testing.T) {
	out := invoke(func() error { return ErrPending })
	if out.Kind != Unimplemented {
		t.Fatalf("outcome = %v, want unimplemented", out.Kind)
	}
}

func TestInvokePendingPanic(t *testing.T) {
	out := invoke(func() error { panic("not yet implemented") })
	if out.Kind != Unimplemented {
		t.Fatalf("outcome = %v, want unimplemented", out.Kind)
	}
}

func TestInvokePanicClassifiedAsFailure(t *testing.T) {
	out := invoke(func() error { panic("oh no") })
	if out.Kind != Failed {
		t.Fatalf("outcome = %v, want failed", out.Kind)
	}
	if !strings.Contains(out.Message, "oh no") {
		t.Errorf("message %q should render the panic payload", out.Message)
	}
	if !strings.Contains(out.Origin, "capture_test.go") {
		t.Errorf("origin %q should point at the panic site", out.Origin)
	}
}

func TestInvokeCapturesDiagnosticOutput(t *testing.T) {
	out := invoke(func() error {
		Logf("checked %d records", 3)
		panic("mismatch")
	})
	if out.Kind != Failed {
		t.Fatalf("outcome = %v, want failed", out.Kind)
	}
	if out.Message != "checked 3 records" {
		t.Errorf("message = %q, want the captured diagnostic output", out.Message)
	}
}

func TestInvokeRuntimePanicOrigin(t *testing.T) {
	out := invoke(func() error {
		var m map[string]int
		m["boom"] = 1
		return nil
	})
	if out.Kind != Failed {
		t.Fatalf("outcome = %v, want failed", out.Kind)
	}
	if !strings.Contains(out.Origin, "capture_test.go") {
		t.Errorf("origin %q should point at the faulting line", out.Origin)
	}
}

func TestInvokeTeardownIsSymmetric(t *testing.T) {
	invoke(func() error { panic("first step explodes") })

	// The sink from the failed invocation must not leak into this one.
	out := invoke(func() error { return nil })
	if out.Kind != Passed {
		t.Fatalf("outcome after a previous panic = %v, want passed", out.Kind)
	}
}

func TestInvokeCorruptedCapture(t *testing.T) {
	capture.mu.Lock()
	capture.sink = &bytes.Buffer{}
	capture.mu.Unlock()
	defer func() {
		capture.mu.Lock()
		capture.sink = nil
		capture.mu.Unlock()
	}()

	executed := false
	out := invoke(func() error { executed = true; return nil })
	if out.Kind != Corrupted {
		t.Fatalf("outcome = %v, want corrupted", out.Kind)
	}
	if executed {
		t.Error("handler must not execute when capture state is corrupted")
	}
}

func TestLogfOutsideInvocationIsDiscarded(t *testing.T) {
	Logf("stray output")

	out := invoke(func() error { return errors.New("boom") })
	if out.Message != "boom" {
		t.Errorf("stray output leaked into the next invocation: %q", out.Message)
	}
}
