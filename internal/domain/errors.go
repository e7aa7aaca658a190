package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by the services. The HTTP layer maps these to
// status codes with errors.As; anything else is treated as an internal
// error.

type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

func InvalidRequest(format string, args ...any) error {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type RuleViolationError struct {
	Reason string
}

func (e *RuleViolationError) Error() string {
	return e.Reason
}

func RuleViolation(format string, args ...any) error {
	return &RuleViolationError{Reason: fmt.Sprintf(format, args...)}
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

func IsInvalidRequest(err error) bool {
	var e *InvalidRequestError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsRuleViolation(err error) bool {
	var e *RuleViolationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
