package response

import (
	"hotel-booking/internal/usecase/queries"
)

type BookingRoomResponse struct {
	RoomID       string `json:"room_id"`
	RoomNumber   string `json:"room_number"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Babies       int    `json:"babies"`
	NightlyPrice int64  `json:"nightly_price"`
	Nights       int    `json:"nights"`
	LineTotal    int64  `json:"line_total"`
}

type BookingServiceResponse struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type BookingResponse struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"user_id"`
	UserEmail      string                   `json:"user_email"`
	CheckIn        string                   `json:"check_in"`
	CheckOut       string                   `json:"check_out"`
	Nights         int                      `json:"nights"`
	Status         string                   `json:"status"`
	Rooms          []BookingRoomResponse    `json:"rooms"`
	Services       []BookingServiceResponse `json:"services"`
	Subtotal       int64                    `json:"subtotal"`
	DiscountCode   *string                  `json:"discount_code,omitempty"`
	DiscountAmount int64                    `json:"discount_amount"`
	Total          int64                    `json:"total"`
	Note           *string                  `json:"note,omitempty"`
	CreatedAt      int64                    `json:"created_at"`
	UpdatedAt      int64                    `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	rooms := make([]BookingRoomResponse, len(v.Rooms))
	for i, r := range v.Rooms {
		rooms[i] = BookingRoomResponse{
			RoomID:       r.RoomID.String(),
			RoomNumber:   r.RoomNumber,
			RoomTypeID:   r.RoomTypeID.String(),
			RoomTypeName: r.RoomTypeName,
			Adults:       r.Adults,
			Children:     r.Children,
			Babies:       r.Babies,
			NightlyPrice: r.NightlyPrice,
			Nights:       r.Nights,
			LineTotal:    r.LineTotal,
		}
	}
	services := make([]BookingServiceResponse, len(v.Services))
	for i, s := range v.Services {
		services[i] = BookingServiceResponse{
			ServiceID: s.ServiceID.String(),
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			LineTotal: s.LineTotal,
		}
	}

	return &BookingResponse{
		ID:             v.ID.String(),
		UserID:         v.UserID.String(),
		UserEmail:      v.UserEmail,
		CheckIn:        v.CheckIn,
		CheckOut:       v.CheckOut,
		Nights:         v.Nights,
		Status:         v.Status,
		Rooms:          rooms,
		Services:       services,
		Subtotal:       v.Subtotal,
		DiscountCode:   v.DiscountCode,
		DiscountAmount: v.DiscountAmount,
		Total:          v.Total,
		Note:           v.Note,
		CreatedAt:      v.CreatedAt.Unix(),
		UpdatedAt:      v.UpdatedAt.Unix(),
	}
}

type BookingListItemResponse struct {
	ID        string `json:"id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
	RoomCount int    `json:"room_count"`
	Total     int64  `json:"total"`
	CreatedAt int64  `json:"created_at"`
}

func FromBookingList(items []*queries.BookingListItem) []*BookingListItemResponse {
	res := make([]*BookingListItemResponse, len(items))
	for i, it := range items {
		res[i] = &BookingListItemResponse{
			ID:        it.ID.String(),
			CheckIn:   it.CheckIn,
			CheckOut:  it.CheckOut,
			Status:    it.Status,
			RoomCount: it.RoomCount,
			Total:     it.Total,
			CreatedAt: it.CreatedAt.Unix(),
		}
	}
	return res
}
