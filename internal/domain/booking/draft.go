package booking

import (
	"errors"

	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/stay"

	"github.com/google/uuid"
)

const MaxRoomsPerBooking = 10

var (
	ErrNoRooms          = errors.New("at least one room is required")
	ErrTooManyRooms     = errors.New("too many rooms in one booking (max 10)")
	ErrDuplicateRoom    = errors.New("room selected more than once")
	ErrDuplicateService = errors.New("service selected more than once")
	ErrRoomTypeMismatch = errors.New("room does not belong to the given room type")
	ErrStaleDiscount    = errors.New("discount was computed for a different subtotal")
)

type DraftRoom struct {
	Line   pricing.RoomLine
	Guests guest.Count
}

// Draft is an in-progress booking. Any change to its lines drops an applied
// discount, since the discount result is only valid for the subtotal it was
// computed from.
type Draft struct {
	window   stay.Window
	rooms    []DraftRoom
	services []pricing.ServiceLine
	discount *pricing.DiscountResult
}

func NewDraft(window stay.Window) *Draft {
	return &Draft{window: window}
}

func (d *Draft) AddRoom(r *room.Room, rt *room.RoomType, guests guest.Count) error {
	if len(d.rooms) >= MaxRoomsPerBooking {
		return ErrTooManyRooms
	}
	if r.RoomTypeID() != rt.ID() {
		return ErrRoomTypeMismatch
	}
	for _, existing := range d.rooms {
		if existing.Line.RoomID == r.ID() {
			return ErrDuplicateRoom
		}
	}
	if err := r.EnsureBookable(); err != nil {
		return err
	}
	if err := guest.Validate(guests, rt.Limits()); err != nil {
		return err
	}

	line, err := pricing.NewRoomLine(r.ID(), rt.ID(), rt.NightlyPrice(), d.window.Nights())
	if err != nil {
		return err
	}

	d.rooms = append(d.rooms, DraftRoom{Line: line, Guests: guests})
	d.discount = nil
	return nil
}

func (d *Draft) AddService(s *room.Service, quantity int) error {
	if !s.IsActive() {
		return room.ErrServiceInactive
	}
	for _, existing := range d.services {
		if existing.ServiceID == s.ID() {
			return ErrDuplicateService
		}
	}

	line, err := pricing.NewServiceLine(s.ID(), quantity, s.UnitPrice())
	if err != nil {
		return err
	}

	d.services = append(d.services, line)
	d.discount = nil
	return nil
}

func (d *Draft) RemoveRoom(roomID uuid.UUID) {
	for i, r := range d.rooms {
		if r.Line.RoomID == roomID {
			d.rooms = append(d.rooms[:i], d.rooms[i+1:]...)
			d.discount = nil
			return
		}
	}
}

func (d *Draft) Subtotal() pricing.VND {
	return pricing.ComputeTotal(d.roomLines(), d.services, nil).Subtotal
}

// ApplyDiscount replaces any previously applied discount.
func (d *Draft) ApplyDiscount(result pricing.DiscountResult) error {
	if result.OrderAmount() != d.Subtotal() {
		return ErrStaleDiscount
	}
	d.discount = &result
	return nil
}

func (d *Draft) ClearDiscount() {
	d.discount = nil
}

func (d *Draft) Quote() pricing.Quote {
	return pricing.ComputeTotal(d.roomLines(), d.services, d.discount)
}

func (d *Draft) Validate() error {
	if len(d.rooms) == 0 {
		return ErrNoRooms
	}
	return nil
}

func (d *Draft) Window() stay.Window               { return d.window }
func (d *Draft) Rooms() []DraftRoom                { return d.rooms }
func (d *Draft) Services() []pricing.ServiceLine   { return d.services }
func (d *Draft) Discount() *pricing.DiscountResult { return d.discount }

func (d *Draft) roomLines() []pricing.RoomLine {
	lines := make([]pricing.RoomLine, len(d.rooms))
	for i, r := range d.rooms {
		lines[i] = r.Line
	}
	return lines
}
