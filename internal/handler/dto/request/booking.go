package request

import (
	"strings"

	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/pkg/patch"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomItemRequest struct {
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	Adults   int       `json:"adults" binding:"min=1,max=4"`
	Children int       `json:"children" binding:"min=0,max=4"`
	Babies   int       `json:"babies" binding:"min=0,max=2"`
}

type ServiceItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=100"`
}

// BookingItemsRequest is the priced part of a booking, shared by quotes and creation.
type BookingItemsRequest struct {
	CheckIn      string               `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut     string               `json:"check_out" binding:"required,datetime=2006-01-02"`
	Rooms        []RoomItemRequest    `json:"rooms" binding:"required,roomcount,dive"`
	Services     []ServiceItemRequest `json:"services,omitempty" binding:"omitempty,dive"`
	DiscountCode *string              `json:"discount_code,omitempty" binding:"omitempty,discountcode"`
}

func (r BookingItemsRequest) RoomRequests() []shared.RoomRequest {
	out := make([]shared.RoomRequest, len(r.Rooms))
	for i, item := range r.Rooms {
		out[i] = shared.RoomRequest{
			RoomID: item.RoomID,
			Guests: guest.Count{Adults: item.Adults, Children: item.Children, Babies: item.Babies},
		}
	}
	return out
}

func (r BookingItemsRequest) ServiceRequests() []shared.ServiceRequest {
	out := make([]shared.ServiceRequest, len(r.Services))
	for i, item := range r.Services {
		out[i] = shared.ServiceRequest{ServiceID: item.ServiceID, Quantity: item.Quantity}
	}
	return out
}

func (r BookingItemsRequest) GetDiscountCode() *string {
	if r.DiscountCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.DiscountCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type CreateBookingRequest struct {
	BookingItemsRequest
	Note *string `json:"note,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateBookingRequest) GetNote() string {
	return strings.TrimSpace(patch.Coalesce(r.Note, ""))
}

type QuoteRequest struct {
	BookingItemsRequest
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed checked_in checked_out cancelled"`
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
