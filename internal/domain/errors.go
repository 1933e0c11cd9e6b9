package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// SeatUnavailableError is reported both at the advisory pre-check and when the
// booking insert loses the uniqueness race at commit time.
type SeatUnavailableError struct {
	Seat int
	Err  error
}

func (e SeatUnavailableError) Error() string {
	if e.Seat > 0 {
		return fmt.Sprintf("seat #%d is no longer available", e.Seat)
	}
	return "seat is no longer available"
}

func (e SeatUnavailableError) Unwrap() error { return e.Err }

// PaymentCancelledError means the user abandoned the checkout; no booking exists.
type PaymentCancelledError struct {
	Reference string
}

func (e PaymentCancelledError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("payment %s was cancelled", e.Reference)
	}
	return "payment was cancelled"
}

type PaymentFailedError struct {
	Reference string
	Msg       string
	Err       error
}

func (e PaymentFailedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Reference != "" {
		return fmt.Sprintf("payment %s failed", e.Reference)
	}
	return "payment failed"
}

func (e PaymentFailedError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsPaymentCancelled(err error) bool {
	var target PaymentCancelledError
	return errors.As(err, &target)
}

func IsPaymentFailed(err error) bool {
	var target PaymentFailedError
	return errors.As(err, &target)
}
