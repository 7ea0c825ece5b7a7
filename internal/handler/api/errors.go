package api

import (
	"errors"
	"log/slog"
	"net/http"

	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	msg    string
	// exposes the domain reason as detail
	withReason bool
}

// First match wins, so more specific sentinels come before ErrDomainValidation.
var usecaseErrors = []errorMapping{
	{target: errs.ErrRoomNotFound, status: http.StatusNotFound, msg: "Room not found"},
	{target: errs.ErrRoomTypeNotFound, status: http.StatusNotFound, msg: "Room type not found"},
	{target: errs.ErrServiceNotFound, status: http.StatusNotFound, msg: "Service not found"},
	{target: errs.ErrBookingNotFound, status: http.StatusNotFound, msg: "Booking not found"},
	{target: errs.ErrDiscountNotFound, status: http.StatusNotFound, msg: "Discount code not found"},
	{target: errs.ErrUserNotFound, status: http.StatusNotFound, msg: "User not found"},

	{target: errs.ErrRoomUnavailable, status: http.StatusConflict, msg: "Room is not available for the selected dates"},
	{target: errs.ErrDuplicateBooking, status: http.StatusConflict, msg: "Duplicate booking request with different parameters"},
	{target: errs.ErrIdempotencyInProgress, status: http.StatusConflict, msg: "Booking request is currently being processed"},
	{target: errs.ErrDiscountExhausted, status: http.StatusConflict, msg: "Discount code usage limit reached"},
	{target: errs.ErrCancellationClosed, status: http.StatusConflict, msg: "Booking can no longer be cancelled"},
	{target: errs.ErrInvalidBookingStatus, status: http.StatusConflict, msg: "Invalid booking status change", withReason: true},
	{target: errs.ErrEmailAlreadyTaken, status: http.StatusConflict, msg: "Email already registered"},

	{target: errs.ErrForbidden, status: http.StatusForbidden, msg: "Insufficient permissions"},

	{target: errs.ErrIdempotencyKeyRequired, status: http.StatusBadRequest, msg: "Idempotency-Key header is required"},
	{target: queries.ErrInvalidCursor, status: http.StatusBadRequest, msg: "Invalid cursor"},

	{target: errs.ErrInvalidStayWindow, status: http.StatusUnprocessableEntity, msg: "Invalid stay dates", withReason: true},
	{target: errs.ErrGuestCapacity, status: http.StatusUnprocessableEntity, msg: "Guest count not allowed", withReason: true},
	{target: errs.ErrInvalidDiscount, status: http.StatusUnprocessableEntity, msg: "Discount code cannot be applied", withReason: true},
	{target: errs.ErrDomainValidation, status: http.StatusUnprocessableEntity, msg: "Domain validation failed", withReason: true},
}

// abortWithUsecaseError maps a usecase error onto the HTTP error contract.
// Anything unmapped is logged and reported as 500.
func abortWithUsecaseError(c *gin.Context, err error, op string) {
	for _, m := range usecaseErrors {
		if errors.Is(err, m.target) {
			var detail any
			if m.withReason {
				detail = gin.H{"reason": err.Error()}
			}
			httperr.AbortWithError(c, m.status, err, m.msg, detail)
			return
		}
	}

	slog.Error(op+" failed", "error", err, "request_id", middleware.GetRequestID(c))
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abortWithBindingError(c *gin.Context, err error) {
	var detail any
	if fields := httperr.BindingDetail(err); len(fields) > 0 {
		detail = gin.H{"fields": fields}
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", detail)
}
