// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For when an order state transition is not allowed
//   - TimeoutError: For when an ask against another component exceeds its deadline
//   - InternalError: For unexpected failures that cannot be classified further
//   - ValueIsRequiredError / ValueIsInvalidError: For validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, which is how
// the HTTP gateway maps store results to response codes.
package errs
