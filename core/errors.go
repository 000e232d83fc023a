package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrorKind classifies the failures a caller may need to react to differently.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindStoreUnavailable
	KindItemNotFound
	KindValidation
	KindUploadFailure
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindStoreUnavailable:
		return "store unavailable"
	case KindItemNotFound:
		return "item not found"
	case KindValidation:
		return "validation"
	case KindUploadFailure:
		return "upload failure"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var (
	ErrStoreUnavailable = errors.New("remote store unavailable")
	ErrItemNotFound     = errors.New("item not found")
	ErrUploadFailed     = errors.New("upload failed")
	ErrUnauthenticated  = errors.New("not signed in or session expired")
)

// StoreError wraps a low level store failure so that it is reported as ErrStoreUnavailable
// while keeping the original error for logs.
func StoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrUnauthenticated) {
		return err
	}
	return errors.Wrapf(ErrStoreUnavailable, "%s: %v", op, err)
}

// KindOf returns the ErrorKind of err, looking through wrapped errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	switch cause := errors.Cause(err).(type) {
	case *ValidationError, validator.ValidationErrors:
		return KindValidation
	default:
		switch {
		case cause == ErrItemNotFound || errors.Is(err, ErrItemNotFound):
			return KindItemNotFound
		case cause == ErrStoreUnavailable || errors.Is(err, ErrStoreUnavailable):
			return KindStoreUnavailable
		case cause == ErrUploadFailed || errors.Is(err, ErrUploadFailed):
			return KindUploadFailure
		case cause == ErrUnauthenticated || errors.Is(err, ErrUnauthenticated):
			return KindUnauthenticated
		}
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	return KindUnknown
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
