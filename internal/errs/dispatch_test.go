package errs

import "testing"

func TestDispatcher_InvokesOnce(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	calls := 0
	var seen *ClassifiedError
	d.Register(KindTokenExpired, func(e *ClassifiedError) {
		calls++
		seen = e
	})

	err := New(KindTokenExpired, "token expired", 401)
	got := d.Dispatch(err)

	if got != err {
		t.Fatalf("Dispatch must return the same error")
	}
	if calls != 1 {
		t.Fatalf("calls=%d, want 1", calls)
	}
	if seen != err {
		t.Fatalf("handler received a different error")
	}
}

func TestDispatcher_NoHandler(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	err := New(KindServerError, "", 0)
	if got := d.Dispatch(err); got != err {
		t.Fatalf("Dispatch without handler must still return the error")
	}
	if d.Dispatch(nil) != nil {
		t.Fatalf("nil error must pass through")
	}
}

func TestDispatcher_LastWriteWins(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	var first, second int
	d.Register(KindResourceNotFound, func(*ClassifiedError) { first++ })
	d.Register(KindResourceNotFound, func(*ClassifiedError) { second++ })

	d.Dispatch(New(KindResourceNotFound, "", 0))
	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d, want replacement semantics", first, second)
	}
}

func TestDispatcher_NilUnregisters(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	calls := 0
	d.Register(KindNetworkError, func(*ClassifiedError) { calls++ })
	d.Register(KindNetworkError, nil)

	d.Dispatch(New(KindNetworkError, "", 0))
	if calls != 0 {
		t.Fatalf("calls=%d, handler should have been removed", calls)
	}
}

func TestDispatcher_SingleDispatchPerError(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	calls := 0
	d.Register(KindTokenExpired, func(*ClassifiedError) { calls++ })

	err := New(KindTokenExpired, "", 0)
	d.Dispatch(err)
	d.Dispatch(err) // layered code returning the same error upward
	if calls != 1 {
		t.Fatalf("calls=%d, want exactly one handler invocation per error", calls)
	}

	// a fresh classification of the same input is a new error and fires again
	d.Dispatch(New(KindTokenExpired, "", 0))
	if calls != 2 {
		t.Fatalf("calls=%d, want new errors to dispatch", calls)
	}
}

func TestDispatcher_ReRegisterInsideHandler(t *testing.T) {
	t.Parallel()
	d := NewDispatcher()

	d.Register(KindTimeout, func(*ClassifiedError) {
		// must not deadlock
		d.Register(KindTimeout, nil)
	})
	d.Dispatch(New(KindTimeout, "", 0))
}
