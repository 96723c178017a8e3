package errors

var (
	ErrResourceNotFound = &DomainError{
		Code:    CodeResourceNotFound,
		Message: "resource not found",
	}
	ErrInvalidTransactionRequest = &DomainError{
		Code:    CodeInvalidTransactionRequest,
		Message: "invalid transaction request",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    CodeInsufficientBalance,
		Message: "insufficient wallet balance",
	}
	ErrIllegalState = &DomainError{
		Code:    CodeIllegalState,
		Message: "illegal state",
	}
	ErrUnsupportedTransactionType = &DomainError{
		Code:    CodeUnsupportedTransactionType,
		Message: "unsupported transaction type",
	}
	ErrUnauthenticated = &DomainError{
		Code:    CodeUnauthenticated,
		Message: "not authenticated",
	}
)
