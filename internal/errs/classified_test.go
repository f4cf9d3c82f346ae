package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	orig := New(KindAlreadyApplied, "You have already applied to this request", 409).
		WithDetails(map[string]any{"requestId": "r-1"})

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back ClassifiedError
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Kind() != orig.Kind() ||
		back.Message() != orig.Message() ||
		back.UserMessage() != orig.UserMessage() ||
		back.StatusCode() != orig.StatusCode() {
		t.Fatalf("round trip lost fields: %+v vs %+v", &back, orig)
	}
	if !back.Timestamp().Equal(orig.Timestamp()) {
		t.Fatalf("timestamp lost: %v vs %v", back.Timestamp(), orig.Timestamp())
	}
}

func TestClassifiedError_CatalogDefaults(t *testing.T) {
	t.Parallel()

	ce := New(KindServerError, "", 0)
	if ce.Message() != "internal server error" {
		t.Fatalf("message=%q", ce.Message())
	}
	if ce.StatusCode() != 500 {
		t.Fatalf("status=%d", ce.StatusCode())
	}
	if ce.UserMessage() != "Something went wrong on our end. Please try again later." {
		t.Fatalf("userMessage=%q", ce.UserMessage())
	}
	if ce.Timestamp().IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestClassifiedError_DetailsCopy(t *testing.T) {
	t.Parallel()

	ce := New(KindFileTooLarge, "", 0).WithDetails(map[string]any{"maxSize": "10MB"})
	m := ce.Details()
	m["maxSize"] = "tampered"
	if ce.Details()["maxSize"] != "10MB" {
		t.Fatalf("Details must return a copy")
	}
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	if Ensure(nil) != nil {
		t.Fatalf("nil must stay nil")
	}

	ce := New(KindTimeout, "", 0)
	if Ensure(ce) != ce {
		t.Fatalf("classified errors pass through unchanged")
	}
	if Ensure(fmt.Errorf("wrap: %w", ce)) != ce {
		t.Fatalf("wrapped classified errors are unwrapped")
	}

	plain := errors.New("boom")
	got := Ensure(plain)
	if got.Kind() != KindUnknown {
		t.Fatalf("kind=%s, want unknown", got.Kind())
	}
	if !errors.Is(got, plain) {
		t.Fatalf("cause not preserved")
	}
}

func TestClassifiedError_ErrorString(t *testing.T) {
	t.Parallel()

	ce := New(KindResourceNotFound, "no such request", 404)
	want := "not_found (404): no such request"
	if ce.Error() != want {
		t.Fatalf("Error()=%q, want %q", ce.Error(), want)
	}
}
