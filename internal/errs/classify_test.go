package errs

import (
	"context"
	"errors"
	"testing"
)

func TestClassify_StatusTable(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	tests := []struct {
		name       string
		status     int
		body       string
		statusText string
		want       ErrorKind
	}{
		{"400 validation", 400, `{"message":"validation failed on field email"}`, "Bad Request", KindValidationFailed},
		{"400 generic", 400, `{"message":"malformed payload"}`, "Bad Request", KindBadRequest},
		{"400 file type", 400, `{"message":"unsupported file type"}`, "Bad Request", KindInvalidFileType},
		{"401 invalid credentials", 401, `{"message":"Invalid credentials"}`, "Unauthorized", KindInvalidCredentials},
		{"401 invalid email", 401, `{"message":"invalid email or password"}`, "Unauthorized", KindInvalidCredentials},
		{"401 invalid password", 401, `{"message":"Invalid password"}`, "Unauthorized", KindInvalidCredentials},
		{"401 token", 401, `{"message":"bad token signature"}`, "Unauthorized", KindTokenExpired},
		{"401 expired", 401, `{"message":"session expired"}`, "Unauthorized", KindTokenExpired},
		{"401 other", 401, `{"message":"nope"}`, "Unauthorized", KindUnauthorized},
		{"403 suspended", 403, `{"message":"account suspended"}`, "Forbidden", KindAccountSuspended},
		{"403 pending", 403, `{"message":"account pending approval"}`, "Forbidden", KindAccountPending},
		{"403 other", 403, `{"message":"forbidden"}`, "Forbidden", KindUnauthorized},
		{"404", 404, `{"message":"no such request"}`, "Not Found", KindResourceNotFound},
		{"409 applied", 409, `{"message":"You have already applied to this request"}`, "Conflict", KindAlreadyApplied},
		{"409 accepted", 409, `{"message":"request already accepted"}`, "Conflict", KindAlreadyAccepted},
		{"409 submitted", 409, `{"message":"review already submitted"}`, "Conflict", KindReviewExists},
		{"409 other", 409, `{"message":"email taken"}`, "Conflict", KindAlreadyExists},
		{"413", 413, ``, "Payload Too Large", KindFileTooLarge},
		{"500", 500, ``, "Internal Server Error", KindServerError},
		{"503", 503, `{"message":"maintenance"}`, "Service Unavailable", KindServiceUnavailable},
		{"418 unknown", 418, ``, "I'm a teapot", KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ce := c.Classify(tc.status, []byte(tc.body), tc.statusText)
			if ce.Kind() != tc.want {
				t.Fatalf("kind=%s, want %s", ce.Kind(), tc.want)
			}
			if ce.StatusCode() != tc.status {
				t.Fatalf("status=%d, want %d", ce.StatusCode(), tc.status)
			}
		})
	}
}

func TestClassify_Scenarios(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	ce := c.Classify(409, []byte(`{"message":"You have already applied to this request"}`), "Conflict")
	if ce.Kind() != KindAlreadyApplied || ce.StatusCode() != 409 {
		t.Fatalf("kind=%s status=%d", ce.Kind(), ce.StatusCode())
	}
	if ce.UserMessage() != "You have already applied to this request." {
		t.Fatalf("userMessage=%q", ce.UserMessage())
	}

	ce = c.Classify(401, []byte(`{"message":"token expired"}`), "Unauthorized")
	if ce.Kind() != KindTokenExpired {
		t.Fatalf("kind=%s, want token_expired", ce.Kind())
	}

	ce = c.Classify(500, nil, "Internal Server Error")
	if ce.Kind() != KindServerError {
		t.Fatalf("kind=%s, want server_error", ce.Kind())
	}
	if ce.UserMessage() != "Something went wrong on our end. Please try again later." {
		t.Fatalf("userMessage=%q", ce.UserMessage())
	}
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)
	body := []byte(`{"message":"validation failed"}`)

	a := c.Classify(400, body, "Bad Request")
	b := c.Classify(400, body, "Bad Request")
	if a.Kind() != b.Kind() || a.StatusCode() != b.StatusCode() || a.Message() != b.Message() {
		t.Fatalf("classification not deterministic: %v vs %v", a, b)
	}
}

func TestClassify_CodeWinsOverMessage(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	ce := c.Classify(409, []byte(`{"code":"review_exists","message":"conflict"}`), "Conflict")
	if ce.Kind() != KindReviewExists {
		t.Fatalf("kind=%s, want review_exists", ce.Kind())
	}
}

func TestClassify_MessageList(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	ce := c.Classify(400, []byte(`{"message":["name required","validation failed"]}`), "Bad Request")
	if ce.Kind() != KindValidationFailed {
		t.Fatalf("kind=%s", ce.Kind())
	}
	if ce.Message() != "name required, validation failed" {
		t.Fatalf("message=%q", ce.Message())
	}
}

func TestClassify_UnparseableBody(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	ce := c.Classify(502, []byte("<html>bad gateway</html>"), "Bad Gateway")
	if ce.Kind() != KindUnknown {
		t.Fatalf("kind=%s", ce.Kind())
	}
	if ce.Message() != "Bad Gateway" {
		t.Fatalf("message=%q, want status text fallback", ce.Message())
	}
	if ce.Details()["statusText"] != "Bad Gateway" {
		t.Fatalf("details=%v", ce.Details())
	}
}

func TestClassify_FileTooLargeDetails(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	ce := c.Classify(413, nil, "Payload Too Large")
	if ce.Details()["maxSize"] != "10MB" {
		t.Fatalf("details=%v, want default maxSize", ce.Details())
	}
	if got := ce.UserMessage(); got != "The file is too large (max 10MB)." {
		t.Fatalf("userMessage=%q, want default limit", got)
	}

	ce = c.Classify(413, []byte(`{"maxSize":"25MB"}`), "Payload Too Large")
	if ce.Details()["maxSize"] != "25MB" {
		t.Fatalf("details=%v, want provided maxSize", ce.Details())
	}
	if got := ce.UserMessage(); got != "The file is too large (max 25MB)." {
		t.Fatalf("userMessage=%q, want the backend's limit", got)
	}
}

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	t.Parallel()
	c := NewHTTPClassifier(nil)

	if k := c.ClassifyTransport(errors.New("connection refused")).Kind(); k != KindNetworkError {
		t.Fatalf("kind=%s, want network_error", k)
	}
	if k := c.ClassifyTransport(fakeTimeoutErr{}).Kind(); k != KindTimeout {
		t.Fatalf("kind=%s, want timeout", k)
	}
	if k := c.ClassifyTransport(context.DeadlineExceeded).Kind(); k != KindTimeout {
		t.Fatalf("kind=%s, want timeout", k)
	}

	cause := errors.New("boom")
	ce := c.ClassifyTransport(cause)
	if !errors.Is(ce, cause) {
		t.Fatalf("cause not preserved")
	}
}
