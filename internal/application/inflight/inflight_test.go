package inflight

import "testing"

func TestAcquire_SecondSubmissionRefused(t *testing.T) {
	r := NewRegistry()

	if !r.Acquire("b1", "login") {
		t.Fatal("first acquire refused")
	}
	if r.Acquire("b1", "login") {
		t.Error("second acquire while in flight must be refused")
	}
}

func TestRelease_ReopensSlot(t *testing.T) {
	r := NewRegistry()

	r.Acquire("b1", "login")
	r.Release("b1", "login")
	if !r.Acquire("b1", "login") {
		t.Error("acquire after release refused")
	}
}

func TestAcquire_ScopedPerBrowserAndAction(t *testing.T) {
	r := NewRegistry()

	r.Acquire("b1", "login")
	if !r.Acquire("b2", "login") {
		t.Error("another browser's submission must not be blocked")
	}
	if !r.Acquire("b1", "signup") {
		t.Error("a different action for the same browser must not be blocked")
	}
}
