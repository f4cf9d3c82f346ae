package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ClassifiedError is the single error type crossing the HTTP boundary.
// It is built once during classification and read-only afterwards; layers
// above pass it up unchanged instead of re-wrapping.
type ClassifiedError struct {
	kind      ErrorKind
	message   string
	userMsg   string
	status    int
	details   map[string]any
	timestamp time.Time
	cause     error

	// set by Dispatcher.Dispatch; an error is consumed by a single
	// handler dispatch even when it crosses several layers
	dispatched bool
}

// New constructs a ClassifiedError for the given kind. An empty message or
// zero status falls back to the kind's catalog defaults; the user-facing
// message always comes from the catalog.
func New(kind ErrorKind, message string, status int) *ClassifiedError {
	if message == "" {
		message = kind.DefaultMessage()
	}
	if status == 0 {
		status = kind.Status()
	}
	return &ClassifiedError{
		kind:      kind,
		message:   message,
		userMsg:   kind.UserMessage(),
		status:    status,
		timestamp: time.Now().UTC(),
	}
}

// WithDetails merges structured details into the error and returns the same
// receiver for chaining during construction.
func (e *ClassifiedError) WithDetails(m map[string]any) *ClassifiedError {
	if e == nil || len(m) == 0 {
		return e
	}
	if e.details == nil {
		e.details = make(map[string]any, len(m))
	}
	for k, v := range m {
		e.details[k] = v
	}
	return e
}

// WithUserMessage overrides the catalog's user-facing message, for the
// cases where the classification can render a more specific one.
func (e *ClassifiedError) WithUserMessage(msg string) *ClassifiedError {
	if e == nil || msg == "" {
		return e
	}
	e.userMsg = msg
	return e
}

// WithCause attaches the underlying error, preserved for errors.Is / errors.As.
func (e *ClassifiedError) WithCause(cause error) *ClassifiedError {
	if e == nil {
		return nil
	}
	e.cause = cause
	return e
}

func (e *ClassifiedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.kind, e.status, e.message, e.cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.kind, e.status, e.message)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

// Kind returns the semantic category of the failure.
func (e *ClassifiedError) Kind() ErrorKind { return e.kind }

// Message returns the developer-facing message.
func (e *ClassifiedError) Message() string { return e.message }

// UserMessage returns the message safe to show to end users.
func (e *ClassifiedError) UserMessage() string { return e.userMsg }

// StatusCode returns the HTTP status the error was classified from
// (0 for transport-level failures).
func (e *ClassifiedError) StatusCode() int { return e.status }

// Timestamp returns the creation time of the error.
func (e *ClassifiedError) Timestamp() time.Time { return e.timestamp }

// Details returns a copy of the structured details, never the internal map.
func (e *ClassifiedError) Details() map[string]any {
	if len(e.details) == 0 {
		return nil
	}
	out := make(map[string]any, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

type classifiedJSON struct {
	Kind        ErrorKind      `json:"kind"`
	Message     string         `json:"message"`
	UserMessage string         `json:"userMessage"`
	StatusCode  int            `json:"statusCode"`
	Details     map[string]any `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// MarshalJSON serializes the error including kind, message, userMessage,
// statusCode and timestamp.
func (e *ClassifiedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(classifiedJSON{
		Kind:        e.kind,
		Message:     e.message,
		UserMessage: e.userMsg,
		StatusCode:  e.status,
		Details:     e.details,
		Timestamp:   e.timestamp,
	})
}

// UnmarshalJSON restores an error serialized with MarshalJSON. The cause is
// not transported.
func (e *ClassifiedError) UnmarshalJSON(b []byte) error {
	var c classifiedJSON
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	e.kind = c.Kind
	e.message = c.Message
	e.userMsg = c.UserMessage
	e.status = c.StatusCode
	e.details = c.Details
	e.timestamp = c.Timestamp
	return nil
}

// Ensure converts any error to *ClassifiedError. A nil input stays nil, an
// already classified error is returned as-is, anything else becomes Unknown
// with the original error preserved as cause.
func Ensure(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}
	return New(KindUnknown, err.Error(), 0).WithCause(err)
}
