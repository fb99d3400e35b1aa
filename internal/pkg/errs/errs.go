package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")

	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrDenied            = errors.New("denied")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrHasDependents     = errors.New("has dependents")
	ErrBatchTooLarge     = errors.New("batch too large")
)

// Deny reasons carried by DeniedError. They are part of the stable error
// surface and never include another tenant's identifiers.
const (
	DenyReasonCrossTenant      = "cross_tenant"
	DenyReasonInsufficientRole = "insufficient_role"
	DenyReasonSelfEscalation   = "self_escalation"
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError indicates a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value is outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError describing the allowed range.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), sanitize(e.ParamName), e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates an object could not be found. It is also
// returned for ids that belong to another tenant, which keeps foreign and
// nonexistent ids indistinguishable to the caller.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// UnauthenticatedError indicates the request carried no usable credential.
type UnauthenticatedError struct {
	Cause error
}

// NewUnauthenticatedError creates an UnauthenticatedError.
func NewUnauthenticatedError() *UnauthenticatedError {
	return &UnauthenticatedError{}
}

// NewUnauthenticatedErrorWithCause creates an UnauthenticatedError wrapping a cause.
func NewUnauthenticatedErrorWithCause(cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", ErrUnauthenticated, sanitize(e.Cause))
	}
	return ErrUnauthenticated.Error()
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// DeniedError indicates an authenticated actor is not permitted to perform
// an operation. Reason is one of the DenyReason constants.
type DeniedError struct {
	Reason string
}

// NewDeniedError creates a DeniedError with the given reason.
func NewDeniedError(reason string) *DeniedError {
	return &DeniedError{Reason: reason}
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDenied, e.Reason)
}

func (e *DeniedError) Unwrap() error {
	return ErrDenied
}

// InvalidTransitionError indicates a requested state change is not in the
// entity's allowed-transition table.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(current, requested string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, sanitize(e.Current), sanitize(e.Requested))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError indicates an optimistic concurrency collision: the record
// changed after it was read. The operation is retryable with fresh state.
type ConflictError struct {
	ParamName string
	ID        any
}

// NewConflictError creates a ConflictError for the given entity.
func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// HasDependentsError indicates a deletion was blocked by live child records.
type HasDependentsError struct {
	ParamName string
	ID        any
}

// NewHasDependentsError creates a HasDependentsError for the given entity.
func NewHasDependentsError(paramName string, id any) *HasDependentsError {
	return &HasDependentsError{ParamName: paramName, ID: id}
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("%s: %s %s has dependent records", ErrHasDependents, e.ParamName, e.ID)
}

func (e *HasDependentsError) Unwrap() error {
	return ErrHasDependents
}

// BatchTooLargeError indicates a bulk request exceeded the batch size bound
// and was rejected before any item was processed.
type BatchTooLargeError struct {
	Size int
	Max  int
}

// NewBatchTooLargeError creates a BatchTooLargeError for the given sizes.
func NewBatchTooLargeError(size, maxSize int) *BatchTooLargeError {
	return &BatchTooLargeError{Size: size, Max: maxSize}
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d items, max is %d", ErrBatchTooLarge, e.Size, e.Max)
}

func (e *BatchTooLargeError) Unwrap() error {
	return ErrBatchTooLarge
}
