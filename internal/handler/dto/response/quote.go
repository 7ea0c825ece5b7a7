package response

import "hotel-booking/internal/usecase/queries"

type QuoteRoomLineResponse struct {
	RoomID       string `json:"room_id"`
	RoomTypeID   string `json:"room_type_id"`
	NightlyPrice int64  `json:"nightly_price"`
	Nights       int    `json:"nights"`
	LineTotal    int64  `json:"line_total"`
}

type QuoteServiceLineResponse struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type QuoteResponse struct {
	CheckIn         string                     `json:"check_in"`
	CheckOut        string                     `json:"check_out"`
	Nights          int                        `json:"nights"`
	Rooms           []QuoteRoomLineResponse    `json:"rooms"`
	Services        []QuoteServiceLineResponse `json:"services"`
	RoomSubtotal    int64                      `json:"room_subtotal"`
	ServiceSubtotal int64                      `json:"service_subtotal"`
	Subtotal        int64                      `json:"subtotal"`
	DiscountCode    *string                    `json:"discount_code,omitempty"`
	DiscountAmount  int64                      `json:"discount_amount"`
	Total           int64                      `json:"total"`
	DiscountError   *string                    `json:"discount_error,omitempty"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	rooms := make([]QuoteRoomLineResponse, len(v.Rooms))
	for i, r := range v.Rooms {
		rooms[i] = QuoteRoomLineResponse{
			RoomID:       r.RoomID.String(),
			RoomTypeID:   r.RoomTypeID.String(),
			NightlyPrice: r.NightlyPrice,
			Nights:       r.Nights,
			LineTotal:    r.LineTotal,
		}
	}
	services := make([]QuoteServiceLineResponse, len(v.Services))
	for i, s := range v.Services {
		services[i] = QuoteServiceLineResponse{
			ServiceID: s.ServiceID.String(),
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			LineTotal: s.LineTotal,
		}
	}

	return &QuoteResponse{
		CheckIn:         v.CheckIn,
		CheckOut:        v.CheckOut,
		Nights:          v.Nights,
		Rooms:           rooms,
		Services:        services,
		RoomSubtotal:    v.RoomSubtotal,
		ServiceSubtotal: v.ServiceSubtotal,
		Subtotal:        v.Subtotal,
		DiscountCode:    v.DiscountCode,
		DiscountAmount:  v.DiscountAmount,
		Total:           v.Total,
		DiscountError:   v.DiscountError,
	}
}
