package errs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"
)

// Classifier turns HTTP failures into classified errors. Kept as an
// interface so the message-sniffing shim can be swapped out once the
// backend emits stable codes everywhere.
type Classifier interface {
	Classify(status int, body []byte, statusText string) *ClassifiedError
	ClassifyTransport(err error) *ClassifiedError
}

// codeTable maps stable machine codes emitted by the backend to kinds.
// When a code is present it wins over any message matching.
var codeTable = map[string]ErrorKind{
	"invalid_credentials": KindInvalidCredentials,
	"token_expired":       KindTokenExpired,
	"unauthorized":        KindUnauthorized,
	"account_suspended":   KindAccountSuspended,
	"account_pending":     KindAccountPending,
	"validation_failed":   KindValidationFailed,
	"not_found":           KindResourceNotFound,
	"already_exists":      KindAlreadyExists,
	"already_applied":     KindAlreadyApplied,
	"already_accepted":    KindAlreadyAccepted,
	"review_exists":       KindReviewExists,
	"file_too_large":      KindFileTooLarge,
	"invalid_file_type":   KindInvalidFileType,
}

// HTTPClassifier implements Classifier against the CareLink backend's error
// envelope {code?, message: string|[]string, ...}.
type HTTPClassifier struct {
	log *zap.Logger
}

var _ Classifier = (*HTTPClassifier)(nil)

// NewHTTPClassifier constructs a classifier logging every classification
// through the given logger (nil means no logging).
func NewHTTPClassifier(log *zap.Logger) *HTTPClassifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClassifier{log: log}
}

// errorBody is the tolerant shape of a backend error payload. Message may
// be a single string or a list of strings (NestJS-style validation output).
type errorBody struct {
	Code    string          `json:"code"`
	Message json.RawMessage `json:"message"`
	MaxSize string          `json:"maxSize"`
}

// messageText flattens the message field; lists are joined with ", ".
func (b errorBody) messageText() string {
	if len(b.Message) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(b.Message, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(b.Message, &list) == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// Classify produces exactly one ClassifiedError for a failed HTTP response.
// It never panics: an unparseable body degrades to the status text.
func (c *HTTPClassifier) Classify(status int, body []byte, statusText string) *ClassifiedError {
	var parsed errorBody
	if len(body) > 0 {
		// ignore parse failures, all fields stay empty
		_ = json.Unmarshal(body, &parsed)
	}
	msg := parsed.messageText()

	kind, ok := codeTable[parsed.Code]
	if !ok {
		kind = kindFromStatus(status, strings.ToLower(msg))
	}

	if msg == "" {
		msg = statusText
	}
	if kind == KindUnknown && msg == "" {
		msg = "unexpected status"
	}

	ce := New(kind, msg, status)
	if kind == KindUnknown && statusText != "" {
		ce.WithDetails(map[string]any{"statusText": statusText})
	}
	if kind == KindFileTooLarge {
		maxSize := parsed.MaxSize
		if maxSize == "" {
			maxSize = "10MB"
		}
		ce.WithDetails(map[string]any{"maxSize": maxSize}).
			WithUserMessage(fmt.Sprintf("The file is too large (max %s).", maxSize))
	}

	c.log.Info("classified error",
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.String("message", ce.Message()),
	)
	return ce
}

// kindFromStatus is the compatibility shim: keyword matching against the
// backend's human-readable messages. msg must already be lower-cased.
func kindFromStatus(status int, msg string) ErrorKind {
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}

	switch status {
	case 400:
		if contains("file type", "unsupported file") {
			return KindInvalidFileType
		}
		if contains("validation") {
			return KindValidationFailed
		}
		return KindBadRequest
	case 401:
		if contains("invalid credentials", "invalid email", "invalid password") {
			return KindInvalidCredentials
		}
		if contains("token", "expired") {
			return KindTokenExpired
		}
		return KindUnauthorized
	case 403:
		if contains("suspended") {
			return KindAccountSuspended
		}
		if contains("pending") {
			return KindAccountPending
		}
		return KindUnauthorized
	case 404:
		return KindResourceNotFound
	case 409:
		if contains("already applied") {
			return KindAlreadyApplied
		}
		if contains("already accepted") {
			return KindAlreadyAccepted
		}
		if contains("already submitted") {
			return KindReviewExists
		}
		return KindAlreadyExists
	case 413:
		return KindFileTooLarge
	case 500:
		return KindServerError
	case 503:
		return KindServiceUnavailable
	default:
		return KindUnknown
	}
}

// ClassifyTransport classifies failures that happened before any HTTP
// response arrived. Timeouts are detected via net.Error and context
// deadlines rather than message substrings.
func (c *HTTPClassifier) ClassifyTransport(err error) *ClassifiedError {
	kind := KindNetworkError
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		kind = KindTimeout
	}

	ce := New(kind, err.Error(), 0).WithCause(err)
	c.log.Info("classified error",
		zap.String("kind", string(kind)),
		zap.String("message", ce.Message()),
	)
	return ce
}
