// Package errors defines the domain error taxonomy shared by services and handlers.
package errors

import "fmt"

// Error codes
const (
	CodeResourceNotFound           = "RESOURCE_NOT_FOUND"
	CodeInvalidTransactionRequest  = "INVALID_TRANSACTION_REQUEST"
	CodeInsufficientBalance        = "INSUFFICIENT_BALANCE"
	CodeIllegalState               = "ILLEGAL_STATE"
	CodeUnsupportedTransactionType = "UNSUPPORTED_TRANSACTION_TYPE"
	CodeUnauthenticated            = "UNAUTHENTICATED"
)

// DomainError is a caller-fixable failure with a stable code and a readable message.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NotFound reports that the named resource is absent or not owned by the caller.
func NotFound(resource string) *DomainError {
	return &DomainError{
		Code:    CodeResourceNotFound,
		Message: resource + " not found",
	}
}

// InvalidRequest reports a violated structural or business rule.
func InvalidRequest(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransactionRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// IllegalState reports a violated lifecycle-transition precondition.
func IllegalState(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    CodeIllegalState,
		Message: fmt.Sprintf(format, args...),
	}
}

// Insufficient reports a debit that would drive a wallet balance negative.
func Insufficient(walletID uint) *DomainError {
	return &DomainError{
		Code:    CodeInsufficientBalance,
		Message: fmt.Sprintf("insufficient balance in wallet %d", walletID),
	}
}
