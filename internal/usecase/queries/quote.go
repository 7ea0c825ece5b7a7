package queries

import (
	"context"
	"errors"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/domain/stay"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"
)

type QuoteQueries interface {
	// Quote prices a selection with the booking rules. A supplied discount
	// code is checked but never consumed.
	Quote(ctx context.Context, req reqdto.QuoteRequest) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewQuoteQueries(uow shared.UnitOfWork, factory *booking.Factory, clock clock.Clock) QuoteQueries {
	return &quoteQueriesImpl{
		uow:     uow,
		factory: factory,
		clock:   clock,
	}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, req reqdto.QuoteRequest) (*QuoteView, error) {
	checkIn, checkOut, err := shared.ParseStayDates(q.factory.Rules, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	reads := q.uow.CommandReads()
	rooms, services, err := shared.LoadSelections(ctx, reads, req.RoomRequests(), req.ServiceRequests())
	if err != nil {
		return nil, err
	}

	draft, err := q.factory.BuildDraft(checkIn, checkOut, rooms, services)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	var discountErr *string
	if code := req.GetDiscountCode(); code != nil {
		if err := q.applyDiscount(ctx, reads, draft, code); err != nil {
			if errors.Is(err, errs.ErrDatabaseOperationFailed) {
				return nil, err
			}
			msg := err.Error()
			discountErr = &msg
		}
	}

	view := toQuoteView(draft)
	view.DiscountError = discountErr
	return view, nil
}

// A rejected code leaves the draft at its subtotal; only store failures abort the quote.
func (q *quoteQueriesImpl) applyDiscount(ctx context.Context, reads shared.CommandReads, draft *booking.Draft, code *string) error {
	d, err := shared.LoadDiscount(ctx, reads, code)
	if err != nil {
		return err
	}
	result, err := d.Apply(draft.Subtotal(), q.clock.Now())
	if err != nil {
		return err
	}
	return draft.ApplyDiscount(result)
}

func toQuoteView(draft *booking.Draft) *QuoteView {
	quote := draft.Quote()
	window := draft.Window()

	view := &QuoteView{
		CheckIn:         window.CheckIn().Format(stay.DateLayout),
		CheckOut:        window.CheckOut().Format(stay.DateLayout),
		Nights:          window.Nights(),
		Rooms:           make([]QuoteRoomLineView, 0, len(draft.Rooms())),
		Services:        make([]QuoteServiceLineView, 0, len(draft.Services())),
		RoomSubtotal:    quote.RoomSubtotal.Int64(),
		ServiceSubtotal: quote.ServiceSubtotal.Int64(),
		Subtotal:        quote.Subtotal.Int64(),
		DiscountAmount:  quote.DiscountAmount().Int64(),
		Total:           quote.Total.Int64(),
	}
	if quote.Discount != nil {
		code := quote.Discount.Code
		view.DiscountCode = &code
	}

	for _, r := range draft.Rooms() {
		view.Rooms = append(view.Rooms, QuoteRoomLineView{
			RoomID:       r.Line.RoomID,
			RoomTypeID:   r.Line.RoomTypeID,
			NightlyPrice: r.Line.NightlyPrice.Int64(),
			Nights:       r.Line.Nights,
			LineTotal:    r.Line.Total().Int64(),
		})
	}
	for _, s := range draft.Services() {
		view.Services = append(view.Services, serviceLineView(s))
	}
	return view
}

func serviceLineView(s pricing.ServiceLine) QuoteServiceLineView {
	return QuoteServiceLineView{
		ServiceID: s.ServiceID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice.Int64(),
		LineTotal: s.Total().Int64(),
	}
}
