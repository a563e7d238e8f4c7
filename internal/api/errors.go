package api

import "errors"

// Kind classifies request failures so callers can branch on the class
// without parsing message text.
type Kind string

const (
	// KindNetwork covers transport failures: the request never produced an
	// HTTP response.
	KindNetwork Kind = "network"
	// KindValidation covers backend-reported 4xx failures carrying a
	// human-readable message.
	KindValidation Kind = "validation"
	// KindAuth covers 401 responses. By the time the caller sees one the
	// token has already been cleared and the unauthorized handler fired.
	KindAuth Kind = "auth"
	// KindUnknown covers everything else (5xx, malformed bodies).
	KindUnknown Kind = "unknown"
)

// Error is the single error type the service layer returns. Message is
// always safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the error class, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// MessageOf extracts the user-facing message, falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
