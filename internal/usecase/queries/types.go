package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomTypeView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	NightlyPrice int64     `json:"nightly_price"`
	Capacity     int       `json:"capacity"`
	MaxAdults    int       `json:"max_adults"`
	MaxChildren  int       `json:"max_children"`
	ImageURL     *string   `json:"image_url,omitempty"`
	RoomCount    int       `json:"room_count"`
}

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   int64     `json:"unit_price"`
}

type AvailableRoomView struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	FloorLevel   int       `json:"floor_level"`
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	RoomTypeName string    `json:"room_type_name"`
	NightlyPrice int64     `json:"nightly_price"`
	Capacity     int       `json:"capacity"`
	MaxAdults    int       `json:"max_adults"`
	MaxChildren  int       `json:"max_children"`
}

type BookingRoomView struct {
	RoomID       uuid.UUID `json:"room_id"`
	RoomNumber   string    `json:"room_number"`
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	RoomTypeName string    `json:"room_type_name"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`
	Babies       int       `json:"babies"`
	NightlyPrice int64     `json:"nightly_price"`
	Nights       int       `json:"nights"`
	LineTotal    int64     `json:"line_total"`
}

type BookingServiceView struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	LineTotal int64     `json:"line_total"`
}

type BookingView struct {
	ID             uuid.UUID            `json:"id"`
	UserID         uuid.UUID            `json:"user_id"`
	UserEmail      string               `json:"user_email"`
	UserFullName   string               `json:"user_full_name"`
	CheckIn        string               `json:"check_in"`
	CheckOut       string               `json:"check_out"`
	Nights         int                  `json:"nights"`
	Status         string               `json:"status"`
	Rooms          []BookingRoomView    `json:"rooms"`
	Services       []BookingServiceView `json:"services"`
	Subtotal       int64                `json:"subtotal"`
	DiscountCode   *string              `json:"discount_code,omitempty"`
	DiscountAmount int64                `json:"discount_amount"`
	Total          int64                `json:"total"`
	Note           *string              `json:"note,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Status    string    `json:"status"`
	RoomCount int       `json:"room_count"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type QuoteRoomLineView struct {
	RoomID       uuid.UUID `json:"room_id"`
	RoomTypeID   uuid.UUID `json:"room_type_id"`
	NightlyPrice int64     `json:"nightly_price"`
	Nights       int       `json:"nights"`
	LineTotal    int64     `json:"line_total"`
}

type QuoteServiceLineView struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	LineTotal int64     `json:"line_total"`
}

// QuoteView is a price preview. DiscountError carries the reason a supplied
// code was not applied; the totals then fall back to the subtotal.
type QuoteView struct {
	CheckIn         string                 `json:"check_in"`
	CheckOut        string                 `json:"check_out"`
	Nights          int                    `json:"nights"`
	Rooms           []QuoteRoomLineView    `json:"rooms"`
	Services        []QuoteServiceLineView `json:"services"`
	RoomSubtotal    int64                  `json:"room_subtotal"`
	ServiceSubtotal int64                  `json:"service_subtotal"`
	Subtotal        int64                  `json:"subtotal"`
	DiscountCode    *string                `json:"discount_code,omitempty"`
	DiscountAmount  int64                  `json:"discount_amount"`
	Total           int64                  `json:"total"`
	DiscountError   *string                `json:"discount_error,omitempty"`
}

type DiscountView struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	Value             int64      `json:"value"`
	MinOrderAmount    int64      `json:"min_order_amount"`
	MaxDiscountAmount *int64     `json:"max_discount_amount,omitempty"`
	ValidFrom         *time.Time `json:"valid_from,omitempty"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	UsedCount         int        `json:"used_count"`
	IsActive          bool       `json:"is_active"`
}

// DiscountHintView is advisory only; Eligible never guarantees the code applies at booking time.
type DiscountHintView struct {
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Value          int64      `json:"value"`
	MinOrderAmount int64      `json:"min_order_amount"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	Eligible       bool       `json:"eligible"`
	Shortfall      int64      `json:"shortfall"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    *string   `json:"phone,omitempty"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
