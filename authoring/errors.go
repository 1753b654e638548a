package authoring

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrRemoteFailure = errors.New("remote failure")
	ErrPartialBatch  = errors.New("batch partially submitted")
)

// ValidationError rejects input before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError means the id is absent from the current tree.
type NotFoundError struct {
	Kind EntityKind
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StatusCategory groups remote status codes the way callers act on them.
type StatusCategory string

const (
	CategoryNetwork StatusCategory = "network"
	CategoryClient  StatusCategory = "client"
	CategoryServer  StatusCategory = "server"
	CategoryUnknown StatusCategory = "unknown"
)

// CategoryFor maps an HTTP status to its category. Zero means the request
// never got a response.
func CategoryFor(status int) StatusCategory {
	switch {
	case status == 0:
		return CategoryNetwork
	case status >= 400 && status < 500:
		return CategoryClient
	case status >= 500:
		return CategoryServer
	}
	return CategoryUnknown
}

const genericRemoteMessage = "request failed"

// RemoteError is a failed persistence call.
type RemoteError struct {
	Op       string
	Status   int
	Category StatusCategory
	Message  string
	Err      error
}

// NewRemoteError builds a RemoteError, falling back to a generic message
// when the server sent none.
func NewRemoteError(op string, status int, message string, err error) *RemoteError {
	if message == "" {
		if status > 0 {
			message = http.StatusText(status)
		}
		if message == "" {
			message = genericRemoteMessage
		}
	}
	return &RemoteError{Op: op, Status: status, Category: CategoryFor(status), Message: message, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemoteFailure }

// asRemote makes sure anything coming back from a RemoteSync is reported as
// a RemoteError.
func asRemote(op string, err error) error {
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return NewRemoteError(op, 0, "", err)
}

// PartialBatchError stops a SubmitAll at the first failing entry.
type PartialBatchError struct {
	Succeeded int
	Created   []Lesson
	Failed    BatchEntry
	Pending   []BatchEntry
	Err       error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch stopped after %d created, %d still queued: %v", e.Succeeded, len(e.Pending), e.Err)
}

func (e *PartialBatchError) Unwrap() error { return e.Err }

func (e *PartialBatchError) Is(target error) bool { return target == ErrPartialBatch }
