package errs

import "errors"

// Usecase-level sentinels. Handlers map these to HTTP status codes.
var (
	// Catalog errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrServiceNotFound  = errors.New("service not found")

	// Booking errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrRoomUnavailable      = errors.New("room is not available for the selected dates")
	ErrDuplicateBooking     = errors.New("duplicate booking")
	ErrInvalidStayWindow    = errors.New("invalid stay window")
	ErrGuestCapacity        = errors.New("guest count not allowed")
	ErrInvalidBookingStatus = errors.New("invalid booking status change")
	ErrCancellationClosed   = errors.New("booking can no longer be cancelled")

	// Discount errors
	ErrDiscountNotFound  = errors.New("discount code not found")
	ErrInvalidDiscount   = errors.New("invalid discount code")
	ErrDiscountExhausted = errors.New("discount code usage limit reached")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already registered")

	// Access errors
	ErrForbidden = errors.New("forbidden")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
