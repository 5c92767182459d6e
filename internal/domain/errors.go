package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrCorruptRecord  = errors.New("corrupt persisted record")
	ErrValidation     = errors.New("validation failed")
	ErrConnectAborted = errors.New("connect aborted by disconnect")
	ErrNoImage        = errors.New("no image available")
	ErrNotConnected   = errors.New("wallet not connected")
	ErrDisconnecting  = errors.New("disconnect in progress")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}

	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Body)
}

// IsCanceled reports whether err is a cancellation signal rather than a failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrConnectAborted)
}
