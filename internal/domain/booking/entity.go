package booking

import (
	"errors"
	"time"

	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/domain/stay"

	"github.com/google/uuid"
)

var ErrCancellationClosed = errors.New("booking can no longer be cancelled by the guest")

type Booking struct {
	id           uuid.UUID
	userID       uuid.UUID
	window       stay.Window
	rooms        []DraftRoom
	services     []pricing.ServiceLine
	discountID   *uuid.UUID
	discountCode *string
	quote        pricing.Quote
	status       Status
	note         Note
	createdAt    time.Time
	updatedAt    time.Time
}

func newBooking(userID uuid.UUID, draft *Draft, discountID *uuid.UUID, note Note, now time.Time) *Booking {
	quote := draft.Quote()
	var code *string
	if quote.Discount != nil {
		c := quote.Discount.Code
		code = &c
	}

	return &Booking{
		id:           uuid.New(),
		userID:       userID,
		window:       draft.Window(),
		rooms:        append([]DraftRoom(nil), draft.Rooms()...),
		services:     append([]pricing.ServiceLine(nil), draft.Services()...),
		discountID:   discountID,
		discountCode: code,
		quote:        quote,
		status:       StatusPending,
		note:         note,
		createdAt:    now,
		updatedAt:    now,
	}
}

// ReconstructBooking rebuilds the parts of a persisted booking that status
// changes depend on. Line items are not loaded.
func ReconstructBooking(id, userID uuid.UUID, window stay.Window, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		window:    window,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ChangeStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Cancel lets guests cancel until the check-in date starts; staff may cancel
// any booking the status machine allows.
func (b *Booking) Cancel(now time.Time, privileged bool) error {
	if !privileged && !now.Before(b.window.CheckIn()) {
		return ErrCancellationClosed
	}
	return b.ChangeStatus(StatusCancelled, now)
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) UserID() uuid.UUID               { return b.userID }
func (b *Booking) Window() stay.Window             { return b.window }
func (b *Booking) Rooms() []DraftRoom              { return b.rooms }
func (b *Booking) Services() []pricing.ServiceLine { return b.services }
func (b *Booking) DiscountID() *uuid.UUID          { return b.discountID }
func (b *Booking) DiscountCode() *string           { return b.discountCode }
func (b *Booking) Quote() pricing.Quote            { return b.quote }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) Note() Note                      { return b.note }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }
