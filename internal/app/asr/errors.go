package asr

import (
	"errors"
	"fmt"
)

// Kind classifies a transcription failure. Only connection failures are
// retryable within an attempt budget: they happen before the server has
// accepted any work. Timeouts fire after the server is already processing
// the upload, so resubmitting risks duplicate server-side compute; server
// and malformed-response errors will not get better by resending the same
// payload.
type Kind int

const (
	KindConnection Kind = iota
	KindTimeout
	KindServer
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a classified transcription failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("asr %s failure: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("asr %s failure: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether resubmitting the same upload is safe and
// potentially useful.
func (e *Error) Retryable() bool { return e.Kind == KindConnection }

// IsRetryable reports whether err is a retryable transcription failure.
func IsRetryable(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Retryable()
}

// KindOf extracts the failure kind, or -1 when err is not an asr error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return -1
}

func connectionErr(msg string, err error) *Error {
	return &Error{Kind: KindConnection, Message: msg, Err: err}
}

func timeoutErr(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: msg, Err: err}
}

func serverErr(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

func malformedErr(msg string, err error) *Error {
	return &Error{Kind: KindMalformed, Message: msg, Err: err}
}
