package queries

import (
	"context"
	"time"

	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	ListRoomTypes(ctx context.Context) ([]*RoomTypeView, error)
	GetRoomType(ctx context.Context, id uuid.UUID) (*RoomTypeView, error)
	ListServices(ctx context.Context) ([]*ServiceView, error)
	ListAvailableRooms(ctx context.Context, checkIn, checkOut string, roomTypeID *uuid.UUID) ([]*AvailableRoomView, error)
}

type CatalogReadStore interface {
	ListRoomTypes(ctx context.Context) ([]*RoomTypeView, error)
	FindRoomType(ctx context.Context, id uuid.UUID) (*RoomTypeView, error)
	ListServices(ctx context.Context) ([]*ServiceView, error)
	// FindAvailableRooms lists bookable rooms with no active booking overlapping [checkIn, checkOut).
	FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomTypeID *uuid.UUID) ([]*AvailableRoomView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
	rules stay.HouseRules
	clock clock.Clock
}

func NewCatalogQueries(store CatalogReadStore, rules stay.HouseRules, clock clock.Clock) CatalogQueries {
	return &catalogQueriesImpl{
		store: store,
		rules: rules,
		clock: clock,
	}
}

func (q *catalogQueriesImpl) ListRoomTypes(ctx context.Context) ([]*RoomTypeView, error) {
	views, err := q.store.ListRoomTypes(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *catalogQueriesImpl) GetRoomType(ctx context.Context, id uuid.UUID) (*RoomTypeView, error) {
	view, err := q.store.FindRoomType(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomTypeNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context) ([]*ServiceView, error) {
	views, err := q.store.ListServices(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// ListAvailableRooms applies the same stay window rule as booking creation.
func (q *catalogQueriesImpl) ListAvailableRooms(ctx context.Context, checkIn, checkOut string, roomTypeID *uuid.UUID) ([]*AvailableRoomView, error) {
	in, out, err := shared.ParseStayDates(q.rules, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	window, err := q.rules.ValidateNew(in, out, q.clock.Now())
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	views, err := q.store.FindAvailableRooms(ctx, window.CheckIn(), window.CheckOut(), roomTypeID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
