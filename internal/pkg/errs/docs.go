// Package errs provides standardized error types for the merchflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//
// Validation errors, used by domain constructors and value objects:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed range
//   - ObjectNotFoundError: an object cannot be found
//
// Lifecycle errors, forming the stable taxonomy surfaced by the public API:
//   - UnauthenticatedError: no or invalid credential
//   - DeniedError: authenticated but not permitted (cross-tenant access,
//     insufficient role, self-escalation)
//   - InvalidTransitionError: a state machine rule violation
//   - ConflictError: an optimistic concurrency collision (retryable)
//   - HasDependentsError: deletion blocked by live child records
//   - BatchTooLargeError: a bulk request rejected before processing
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrDenied)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, which keeps
// transport-level mapping independent of error message text.
package errs
