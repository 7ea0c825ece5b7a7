package pricing

import "github.com/google/uuid"

type RoomLine struct {
	RoomID       uuid.UUID
	RoomTypeID   uuid.UUID
	NightlyPrice VND
	Nights       int
}

func NewRoomLine(roomID, roomTypeID uuid.UUID, nightlyPrice VND, nights int) (RoomLine, error) {
	if nightlyPrice < 0 {
		return RoomLine{}, ErrNegativeAmount
	}
	if nights < 1 {
		return RoomLine{}, ErrInvalidNights
	}
	return RoomLine{RoomID: roomID, RoomTypeID: roomTypeID, NightlyPrice: nightlyPrice, Nights: nights}, nil
}

func (l RoomLine) Total() VND {
	return l.NightlyPrice.Times(l.Nights)
}

type ServiceLine struct {
	ServiceID uuid.UUID
	Quantity  int
	UnitPrice VND
}

func NewServiceLine(serviceID uuid.UUID, quantity int, unitPrice VND) (ServiceLine, error) {
	if unitPrice < 0 {
		return ServiceLine{}, ErrNegativeAmount
	}
	if quantity < 1 {
		return ServiceLine{}, ErrInvalidQuantity
	}
	return ServiceLine{ServiceID: serviceID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

func (l ServiceLine) Total() VND {
	return l.UnitPrice.Times(l.Quantity)
}

// DiscountResult is what the discount applier returns for a given order amount.
// FinalAmount + DiscountAmount always equals that order amount.
type DiscountResult struct {
	Code           string
	DiscountAmount VND
	FinalAmount    VND
}

func (d DiscountResult) OrderAmount() VND {
	return d.FinalAmount + d.DiscountAmount
}

type Quote struct {
	RoomSubtotal    VND
	ServiceSubtotal VND
	Subtotal        VND
	Discount        *DiscountResult
	Total           VND
}

func (q Quote) DiscountAmount() VND {
	if q.Discount == nil {
		return 0
	}
	return q.Discount.DiscountAmount
}

// ComputeTotal sums the lines and, when a discount is attached, takes its
// FinalAmount as the total without recomputing the discount.
func ComputeTotal(rooms []RoomLine, services []ServiceLine, discount *DiscountResult) Quote {
	var q Quote
	for _, r := range rooms {
		q.RoomSubtotal += r.Total()
	}
	for _, s := range services {
		q.ServiceSubtotal += s.Total()
	}
	q.Subtotal = q.RoomSubtotal + q.ServiceSubtotal
	q.Total = q.Subtotal

	if discount != nil {
		d := *discount
		q.Discount = &d
		q.Total = d.FinalAmount
	}
	return q
}
