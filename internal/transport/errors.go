package transport

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a webhook upload failed
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConfiguration means the webhook URL is missing or unusable
	KindConfiguration
	// KindTransport means the request failed or the webhook answered non-2xx
	KindTransport
	// KindResponseShape means the webhook answered 2xx without an attachment URL
	KindResponseShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindResponseShape:
		return "response shape"
	default:
		return "unknown"
	}
}

var (
	ErrConfiguration = errors.New("webhook configuration error")
	ErrTransport     = errors.New("webhook transport error")
	ErrResponseShape = errors.New("webhook response shape error")
)

// UploadError is the only error type returned by WebhookClient.Upload
type UploadError struct {
	Kind       ErrorKind
	StatusCode int    // HTTP status, 0 when no response was received
	Body       string // Response body as received, for non-2xx responses
	msg        string
	err        error
}

func newUploadError(kind ErrorKind, err error, format string, args ...any) *UploadError {
	return &UploadError{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *UploadError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *UploadError) Unwrap() error {
	return e.err
}

// Is lets callers match on the kind sentinels with errors.Is
func (e *UploadError) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrResponseShape:
		return e.Kind == KindResponseShape
	}
	return false
}

// KindOf returns the kind of the first UploadError in err's chain
func KindOf(err error) ErrorKind {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Kind
	}
	return KindUnknown
}
