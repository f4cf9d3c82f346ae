// Package errs defines the error taxonomy shared by the API client and CLI.
package errs

import "net/http"

// ErrorKind tags the semantic category of a failure. The set is closed:
// callers switch on kinds, they never invent new ones.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindTokenExpired       ErrorKind = "token_expired"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindAccountSuspended   ErrorKind = "account_suspended"
	KindAccountPending     ErrorKind = "account_pending"
	KindValidationFailed   ErrorKind = "validation_failed"
	KindBadRequest         ErrorKind = "bad_request"
	KindResourceNotFound   ErrorKind = "not_found"
	KindAlreadyExists      ErrorKind = "already_exists"
	KindAlreadyApplied     ErrorKind = "already_applied"
	KindAlreadyAccepted    ErrorKind = "already_accepted"
	KindReviewExists       ErrorKind = "review_exists"
	KindFileTooLarge       ErrorKind = "file_too_large"
	KindInvalidFileType    ErrorKind = "invalid_file_type"
	KindNetworkError       ErrorKind = "network_error"
	KindTimeout            ErrorKind = "timeout"
	KindServerError        ErrorKind = "server_error"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindUnknown            ErrorKind = "unknown"
)

// kindInfo carries the per-kind defaults used when nothing more specific
// is available from the backend.
type kindInfo struct {
	status  int
	message string
	userMsg string
}

var catalog = map[ErrorKind]kindInfo{
	KindInvalidCredentials: {http.StatusUnauthorized, "invalid credentials", "Incorrect email or password."},
	KindTokenExpired:       {http.StatusUnauthorized, "token expired", "Your session has expired. Please sign in again."},
	KindUnauthorized:       {http.StatusUnauthorized, "unauthorized", "You are not allowed to do that."},
	KindAccountSuspended:   {http.StatusForbidden, "account suspended", "Your account has been suspended. Contact support."},
	KindAccountPending:     {http.StatusForbidden, "account pending approval", "Your account is awaiting approval."},
	KindValidationFailed:   {http.StatusBadRequest, "validation failed", "Please check the entered fields and try again."},
	KindBadRequest:         {http.StatusBadRequest, "bad request", "The request could not be processed."},
	KindResourceNotFound:   {http.StatusNotFound, "not found", "We couldn't find what you were looking for."},
	KindAlreadyExists:      {http.StatusConflict, "already exists", "That record already exists."},
	KindAlreadyApplied:     {http.StatusConflict, "application already submitted", "You have already applied to this request."},
	KindAlreadyAccepted:    {http.StatusConflict, "request already accepted", "This request has already been accepted by another nurse."},
	KindReviewExists:       {http.StatusConflict, "review already submitted", "You have already reviewed this request."},
	KindFileTooLarge:       {http.StatusRequestEntityTooLarge, "file too large", "The file is too large (max 10MB)."},
	KindInvalidFileType:    {http.StatusBadRequest, "invalid file type", "That file type is not supported."},
	KindNetworkError:       {0, "network error", "Unable to reach the server. Check your connection."},
	KindTimeout:            {0, "request timed out", "The request timed out. Please try again."},
	KindServerError:        {http.StatusInternalServerError, "internal server error", "Something went wrong on our end. Please try again later."},
	KindServiceUnavailable: {http.StatusServiceUnavailable, "service unavailable", "The service is temporarily unavailable. Please try again shortly."},
	KindUnknown:            {0, "unknown error", "Something unexpected happened. Please try again."},
}

// Status returns the default HTTP status associated with the kind
// (0 for kinds that have no HTTP origin).
func (k ErrorKind) Status() int { return catalog[k].status }

// DefaultMessage returns the developer-facing message template for the kind.
func (k ErrorKind) DefaultMessage() string {
	if info, ok := catalog[k]; ok {
		return info.message
	}
	return catalog[KindUnknown].message
}

// UserMessage returns the user-facing message for the kind. It never
// exposes backend internals.
func (k ErrorKind) UserMessage() string {
	if info, ok := catalog[k]; ok {
		return info.userMsg
	}
	return catalog[KindUnknown].userMsg
}

// Retryable reports whether an error of this kind is worth retrying.
// Client-side mistakes (4xx-derived kinds) fail fast.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindNetworkError, KindTimeout, KindServerError, KindServiceUnavailable:
		return true
	}
	return false
}
