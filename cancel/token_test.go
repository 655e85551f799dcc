package cancel

import "testing"

func TestNoOp(t *testing.T) {
	tok := NoOp()
	for i := 0; i < 5; i++ {
		if tok.IsCancelled() {
			t.Error("NoOp token must never cancel")
		}
	}
	if err := tok.ThrowIfCancelled(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCounter(t *testing.T) {
	tok := Counter(2)

	if tok.IsCancelled() {
		t.Error("token cancelled too early")
	}
	if tok.IsCancelled() {
		t.Error("token cancelled too early")
	}
	if !tok.IsCancelled() {
		t.Error("token should be cancelled after 2 polls")
	}

	err := tok.ThrowIfCancelled()
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if _, ok := err.(*Error); !ok {
		t.Errorf("unexpected error type: %T", err)
	}
}

func TestExplicitCancel(t *testing.T) {
	tok := Counter(100)
	tok.Cancel("user request")

	if !tok.IsCancelled() {
		t.Error("token should report cancelled")
	}

	err := tok.ThrowIfCancelled()
	if err == nil || err.(*Error).Reason != "user request" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTimed(t *testing.T) {
	tok := Timed(0)
	if !tok.IsCancelled() {
		t.Error("zero-duration timed token should already be cancelled")
	}
}
