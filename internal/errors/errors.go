// Package errors defines error types used throughout the launchpad client.
//
// The LaunchpadError type captures the failure modes of address derivation,
// instruction encoding, account resolution, and transaction submission,
// providing stable error codes and support for errors.Is/As matching.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the launchpad client.
const (
	ErrCodeDerivationFailed    = "DERIVATION_FAILED"
	ErrCodeEncodingFailed      = "ENCODING_FAILED"
	ErrCodeAccountResolution   = "ACCOUNT_RESOLUTION_FAILED"
	ErrCodeSendFailed          = "SEND_FAILED"
	ErrCodeConfirmationTimeout = "CONFIRMATION_TIMEOUT"
	ErrCodeProgramRejected     = "PROGRAM_REJECTED"
	ErrCodeInvalidArgument     = "INVALID_ARGUMENT"
	ErrCodeMetadataUpload      = "METADATA_UPLOAD_FAILED"
)

// LaunchpadError represents an error in the launchpad client.
type LaunchpadError struct {
	// Code is a unique error code for this error type.
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Details contains additional error context.
	Details map[string]any
}

// Error implements the error interface.
func (e *LaunchpadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *LaunchpadError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target.
func (e *LaunchpadError) Is(target error) bool {
	t, ok := target.(*LaunchpadError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error.
func (e *LaunchpadError) WithCause(cause error) *LaunchpadError {
	e.Cause = cause
	return e
}

// WithDetails adds details to the error.
func (e *LaunchpadError) WithDetails(details map[string]any) *LaunchpadError {
	e.Details = details
	return e
}

// NewError creates a new LaunchpadError.
func NewError(code, message string) *LaunchpadError {
	return &LaunchpadError{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors for matching with errors.Is.
var (
	// ErrDerivationFailed is returned when no valid off-curve address exists
	// for any bump seed. Effectively unreachable in practice.
	ErrDerivationFailed = NewError(ErrCodeDerivationFailed, "no valid program-derived address for seeds")

	// ErrConfirmationTimeout is returned when a sent transaction was not
	// confirmed within the deadline. The transaction may or may not have
	// landed; callers must verify via signature lookup before retrying.
	ErrConfirmationTimeout = NewError(ErrCodeConfirmationTimeout, "transaction confirmation timed out")
)

// DerivationFailed creates an error for a failed PDA derivation.
func DerivationFailed(what string, cause error) *LaunchpadError {
	return NewError(ErrCodeDerivationFailed, fmt.Sprintf("derive %s", what)).WithCause(cause)
}

// EncodingFailed creates an error for a value that cannot be represented in
// the fixed wire format. Never retried: the same input fails identically.
func EncodingFailed(reason string) *LaunchpadError {
	return NewError(ErrCodeEncodingFailed, reason)
}

// AccountResolutionFailed creates an error for a token account that could not
// be found or created.
func AccountResolutionFailed(account string, cause error) *LaunchpadError {
	return NewError(ErrCodeAccountResolution, fmt.Sprintf("resolve account %s", account)).WithCause(cause)
}

// SendFailed creates an error for a transport-level submission failure.
func SendFailed(cause error) *LaunchpadError {
	return NewError(ErrCodeSendFailed, "send transaction").WithCause(cause)
}

// ConfirmationTimeout creates an explicitly-ambiguous timeout error carrying
// the signature of the in-flight transaction.
func ConfirmationTimeout(signature string) *LaunchpadError {
	return NewError(ErrCodeConfirmationTimeout, "transaction confirmation timed out").
		WithDetails(map[string]any{"signature": signature})
}

// ProgramRejected creates an error for a transaction the on-chain program
// rejected, keeping the program's own error payload.
func ProgramRejected(programErr any) *LaunchpadError {
	return NewError(ErrCodeProgramRejected, fmt.Sprintf("program rejected transaction: %v", programErr)).
		WithDetails(map[string]any{"program_error": programErr})
}

// InvalidArgument creates an error for programmer misuse of the public API.
func InvalidArgument(field, reason string) *LaunchpadError {
	return NewError(ErrCodeInvalidArgument, fmt.Sprintf("%s: %s", field, reason))
}

// MetadataUploadFailed creates an error for a failed metadata upload.
func MetadataUploadFailed(cause error) *LaunchpadError {
	return NewError(ErrCodeMetadataUpload, "upload token metadata").WithCause(cause)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsCode reports whether any error in err's chain is a LaunchpadError with
// the given code.
func IsCode(err error, code string) bool {
	var le *LaunchpadError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
