// Package errs provides standardized error types for the shipping wizard.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the four error kinds the wizard distinguishes:
//   - FieldValidationError / FieldErrors: schema-level failures shown inline, never sent over the network
//   - BusinessRuleError: pre-network rule violations such as an out of stock box
//   - RemoteCallError: failures reported by one of the remote services
//   - ErrIdentityUnknown: submission attempted without an identified acting user
//
// Generic value errors (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange,
// ObjectNotFound) follow the same shape:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support
package errs
