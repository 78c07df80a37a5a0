package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrSubscriptionClosed = fmt.Errorf("change subscription closed")

	ErrNotFound          = fmt.Errorf("not found")
	ErrDuplicate         = fmt.Errorf("duplicate record")
	ErrReferenceMissing  = fmt.Errorf("referenced entity missing")
	ErrInvalidStatus     = fmt.Errorf("invalid message status")
	ErrInvalidPagination = fmt.Errorf("invalid pagination")
	ErrInvalidTimestamp  = fmt.Errorf("invalid timestamp")
	ErrMalformedDocument = fmt.Errorf("malformed document")
	ErrUnknownChange     = fmt.Errorf("unknown change type")
	ErrSelfChat          = fmt.Errorf("sender and receiver must differ")
	ErrForbidden         = fmt.Errorf("not allowed")
	ErrInvalidToken      = fmt.Errorf("invalid or expired token")
	ErrInvalidMessage    = fmt.Errorf("invalid message")
	ErrUnregistered      = fmt.Errorf("device token unregistered")
)
