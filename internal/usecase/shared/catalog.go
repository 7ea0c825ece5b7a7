package shared

import (
	"context"
	"errors"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/discount"
	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomRequest struct {
	RoomID uuid.UUID
	Guests guest.Count
}

type ServiceRequest struct {
	ServiceID uuid.UUID
	Quantity  int
}

// ParseStayDates reads YYYY-MM-DD dates as midnight in the house location.
func ParseStayDates(rules stay.HouseRules, checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := rules.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrapf(err, "check_in %q", checkIn), errs.ErrInvalidStayWindow)
	}
	out, err := rules.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrapf(err, "check_out %q", checkOut), errs.ErrInvalidStayWindow)
	}
	return in, out, nil
}

// LoadSelections resolves requested rooms and services against the catalog.
// Prices come from the catalog rows only.
func LoadSelections(
	ctx context.Context,
	reads CommandReads,
	rooms []RoomRequest,
	services []ServiceRequest,
) ([]booking.RoomSelection, []booking.ServiceSelection, error) {
	roomSel := make([]booking.RoomSelection, 0, len(rooms))
	for _, req := range rooms {
		snap, err := reads.RoomByID(ctx, req.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, nil, errs.Wrapf(errs.ErrRoomNotFound, "room %s", req.RoomID)
			}
			return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		rt, err := room.NewRoomType(snap.RoomTypeID, snap.RoomTypeName, snap.NightlyPrice, snap.Capacity, snap.MaxAdults, snap.MaxChildren)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		r, err := room.NewRoom(snap.ID, snap.Number, snap.FloorID, snap.RoomTypeID, snap.Status)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrDomainValidation)
		}

		roomSel = append(roomSel, booking.RoomSelection{Room: r, Type: rt, Guests: req.Guests})
	}

	serviceSel := make([]booking.ServiceSelection, 0, len(services))
	for _, req := range services {
		snap, err := reads.ServiceByID(ctx, req.ServiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, nil, errs.Wrapf(errs.ErrServiceNotFound, "service %s", req.ServiceID)
			}
			return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		s, err := room.NewService(snap.ID, snap.Name, snap.UnitPrice, snap.IsActive)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		serviceSel = append(serviceSel, booking.ServiceSelection{Service: s, Quantity: req.Quantity})
	}

	return roomSel, serviceSel, nil
}

// LoadDiscount returns nil, nil when no code was given.
func LoadDiscount(ctx context.Context, reads CommandReads, code *string) (*discount.Discount, error) {
	if code == nil || *code == "" {
		return nil, nil
	}

	normalized, err := discount.NewCode(*code)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDiscount)
	}

	snap, err := reads.DiscountByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrDiscountNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	d, err := DiscountFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDiscount)
	}
	return d, nil
}

func DiscountFromSnapshot(snap *DiscountSnapshot) (*discount.Discount, error) {
	return discount.NewDiscount(discount.Attrs{
		ID:                snap.ID,
		Code:              snap.Code,
		Description:       snap.Description,
		Type:              snap.Type,
		Value:             snap.Value,
		MinOrderAmount:    snap.MinOrderAmount,
		MaxDiscountAmount: snap.MaxDiscountAmount,
		ValidFrom:         snap.ValidFrom,
		ValidUntil:        snap.ValidUntil,
		UsageLimit:        snap.UsageLimit,
		UsedCount:         snap.UsedCount,
		IsActive:          snap.IsActive,
	})
}

// BookingFromSnapshot places the stored calendar dates in the house location.
func BookingFromSnapshot(snap *BookingSnapshot, loc *time.Location) (*booking.Booking, error) {
	status, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	window, err := stay.NewWindow(inLocation(snap.CheckIn, loc), inLocation(snap.CheckOut, loc))
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(snap.ID, snap.UserID, window, status, snap.CreatedAt, snap.UpdatedAt), nil
}

func inLocation(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// ClassifyDomainError marks a domain rejection with the usecase sentinel
// handlers map to a status code. The original message is kept.
func ClassifyDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case isAny(err, stay.ErrCheckOutNotAfterCheckIn, stay.ErrCheckInTooEarly, stay.ErrCheckOutTooLate, stay.ErrCheckInInPast):
		return errs.Mark(err, errs.ErrInvalidStayWindow)
	case isAny(err, guest.ErrNoAdult, guest.ErrNegativeCount, guest.ErrExceedsHardCap, guest.ErrExceedsRoomCapacity,
		guest.ErrTooManyAdults, guest.ErrTooManyChildren, guest.ErrTooManyBabies):
		return errs.Mark(err, errs.ErrGuestCapacity)
	case isAny(err, discount.ErrInactive, discount.ErrNotYetValid, discount.ErrExpired, discount.ErrUsageLimitReached,
		discount.ErrBelowMinOrder):
		return errs.Mark(err, errs.ErrInvalidDiscount)
	case isAny(err, room.ErrNotBookable):
		return errs.Mark(err, errs.ErrRoomUnavailable)
	case isAny(err, booking.ErrCancellationClosed):
		return errs.Mark(err, errs.ErrCancellationClosed)
	case isAny(err, booking.ErrInvalidStatusTransition, booking.ErrInvalidStatus):
		return errs.Mark(err, errs.ErrInvalidBookingStatus)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
