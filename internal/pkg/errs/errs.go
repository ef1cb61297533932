package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrFieldValidation   = errors.New("field validation failed")
	ErrBusinessRule      = errors.New("business rule violated")
	ErrRemoteCall        = errors.New("remote call failed")
	ErrIdentityUnknown   = errors.New("acting user is unknown")
)

// sanitize keeps user supplied values on a single line inside error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError is returned when a lookup by identifier yields nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails a format or domain check.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// FieldValidationError reports a single form field that blocks the current
// wizard step. Field uses the dotted draft path, e.g. "orderData.partnerOrderNumber".
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewFieldValidationError(field, message string) *FieldValidationError {
	return &FieldValidationError{Field: field, Message: message}
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrFieldValidation, e.Field, e.Message)
}

func (e *FieldValidationError) Unwrap() error {
	return ErrFieldValidation
}

// FieldErrors collects every field failure of a step so the UI can show them inline at once.
type FieldErrors []*FieldValidationError

// Add appends a failure for field.
func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, NewFieldValidationError(field, message))
}

// Has reports whether field failed.
func (f FieldErrors) Has(field string) bool {
	for _, e := range f {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there are no failures.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, e := range f {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrFieldValidation, strings.Join(parts, "; "))
}

func (f FieldErrors) Unwrap() error {
	return ErrFieldValidation
}

// BusinessRuleError blocks progression before any network call is made.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrBusinessRule, e.Rule, e.Message)
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRule
}

// RemoteCallError wraps a failed call to one of the remote services.
// StatusCode is zero when the request never got a response.
type RemoteCallError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func NewRemoteCallError(operation string, statusCode int) *RemoteCallError {
	return &RemoteCallError{Operation: operation, StatusCode: statusCode}
}

func NewRemoteCallErrorWithCause(operation string, statusCode int, cause error) *RemoteCallError {
	return &RemoteCallError{Operation: operation, StatusCode: statusCode, Cause: cause}
}

func (e *RemoteCallError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteCall, e.Operation)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *RemoteCallError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRemoteCall, e.Cause}
	}
	return []error{ErrRemoteCall}
}
