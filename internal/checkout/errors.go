package checkout

import "errors"

// Local validation errors. All of these are detected before any network
// interaction and returned at the call site of the violating operation.
var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to check out")
	ErrAlreadySubmitting = errors.New("a submission is already in flight")
	ErrSessionLocked     = errors.New("session is locked while submitting")
	ErrSessionFinalized  = errors.New("session is finalized after a successful order")
	ErrSessionDiscarded  = errors.New("session has been discarded")
	ErrItemNotFound      = errors.New("line item not found in session")
	ErrInvalidPayment    = errors.New("unknown payment method")
)
