package booking

import (
	"time"

	"hotel-booking/internal/domain/discount"
	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// RoomSelection pairs a catalog room with the guests staying in it.
type RoomSelection struct {
	Room   *room.Room
	Type   *room.RoomType
	Guests guest.Count
}

type ServiceSelection struct {
	Service  *room.Service
	Quantity int
}

type Factory struct {
	Clock clock.Clock
	Rules stay.HouseRules
}

func NewFactory(clock clock.Clock, rules stay.HouseRules) *Factory {
	return &Factory{
		Clock: clock,
		Rules: rules,
	}
}

// BuildDraft prices a selection from catalog data. Client-supplied prices
// are never an input.
func (f *Factory) BuildDraft(checkIn, checkOut time.Time, rooms []RoomSelection, services []ServiceSelection) (*Draft, error) {
	window, err := f.Rules.ValidateNew(checkIn, checkOut, f.Clock.Now())
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}

	draft := NewDraft(window)
	for _, sel := range rooms {
		if err := draft.AddRoom(sel.Room, sel.Type, sel.Guests); err != nil {
			return nil, err
		}
	}
	for _, sel := range services {
		if err := draft.AddService(sel.Service, sel.Quantity); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

func (f *Factory) CreateBooking(
	userID uuid.UUID,
	checkIn, checkOut time.Time,
	rooms []RoomSelection,
	services []ServiceSelection,
	discountEntity *discount.Discount,
	note Note,
) (*Booking, error) {
	draft, err := f.BuildDraft(checkIn, checkOut, rooms, services)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	var discountID *uuid.UUID
	if discountEntity != nil {
		result, err := discountEntity.Apply(draft.Subtotal(), now)
		if err != nil {
			return nil, err
		}
		if err := draft.ApplyDiscount(result); err != nil {
			return nil, err
		}
		id := discountEntity.ID()
		discountID = &id
	}

	return newBooking(userID, draft, discountID, note, now), nil
}
