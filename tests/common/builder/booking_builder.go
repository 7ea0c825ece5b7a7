//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID       uuid.UUID
	CheckIn      string
	CheckOut     string
	Rooms        []reqdto.RoomItemRequest
	Services     []reqdto.ServiceItemRequest
	DiscountCode *string
	Note         *string
	Status       string
	NightlyPrice int64
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:   uuid.New(),
		CheckIn:  "2025-07-01",
		CheckOut: "2025-07-03",
		Rooms: []reqdto.RoomItemRequest{
			{RoomID: uuid.New(), Adults: 2},
		},
		Status:       "pending",
		NightlyPrice: 900_000,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithRoom(roomID uuid.UUID, adults, children, babies int) *BookingBuilder {
	b.Rooms = []reqdto.RoomItemRequest{{RoomID: roomID, Adults: adults, Children: children, Babies: babies}}
	return b
}

func (b *BookingBuilder) AddRoom(roomID uuid.UUID, adults int) *BookingBuilder {
	b.Rooms = append(b.Rooms, reqdto.RoomItemRequest{RoomID: roomID, Adults: adults})
	return b
}

func (b *BookingBuilder) WithService(serviceID uuid.UUID, quantity int) *BookingBuilder {
	b.Services = append(b.Services, reqdto.ServiceItemRequest{ServiceID: serviceID, Quantity: quantity})
	return b
}

func (b *BookingBuilder) WithDiscountCode(code string) *BookingBuilder {
	b.DiscountCode = &code
	return b
}

func (b *BookingBuilder) WithNote(note string) *BookingBuilder {
	b.Note = &note
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) items() reqdto.BookingItemsRequest {
	return reqdto.BookingItemsRequest{
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Rooms:        b.Rooms,
		Services:     b.Services,
		DiscountCode: b.DiscountCode,
	}
}

// Build methods
func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		BookingItemsRequest: b.items(),
		Note:                b.Note,
	}
}

func (b *BookingBuilder) BuildQuoteDTO() reqdto.QuoteRequest {
	return reqdto.QuoteRequest{BookingItemsRequest: b.items()}
}

// BuildView prices every room at NightlyPrice with no services or discount.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	in, _ := time.Parse(time.DateOnly, b.CheckIn)
	out, _ := time.Parse(time.DateOnly, b.CheckOut)
	nights := int(out.Sub(in).Hours() / 24)

	rooms := make([]queries.BookingRoomView, len(b.Rooms))
	var subtotal int64
	for i, r := range b.Rooms {
		line := b.NightlyPrice * int64(nights)
		subtotal += line
		rooms[i] = queries.BookingRoomView{
			RoomID:       r.RoomID,
			RoomNumber:   "101",
			RoomTypeID:   uuid.New(),
			RoomTypeName: "Deluxe",
			Adults:       r.Adults,
			Children:     r.Children,
			Babies:       r.Babies,
			NightlyPrice: b.NightlyPrice,
			Nights:       nights,
			LineTotal:    line,
		}
	}

	now := time.Now()
	return &queries.BookingView{
		ID:           uuid.New(),
		UserID:       b.UserID,
		UserEmail:    "test@example.com",
		UserFullName: "Nguyen Van A",
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Nights:       nights,
		Status:       b.Status,
		Rooms:        rooms,
		Services:     []queries.BookingServiceView{},
		Subtotal:     subtotal,
		Total:        subtotal,
		Note:         b.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
