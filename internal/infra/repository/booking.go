package repository

import (
	"context"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const insertBookingSQL = `
INSERT INTO bookings (
    id, user_id, check_in, check_out, status, discount_id, discount_code,
    subtotal, discount_amount, total, note, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
RETURNING id
`

// The exclusion constraint on (room_id, stay) rejects overlapping active stays.
const insertBookingRoomSQL = `
INSERT INTO booking_rooms (
    booking_id, room_id, room_type_id, adults, children, babies, nightly_price, nights, stay
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, daterange($9::date, $10::date, '[)'))
`

const insertBookingServiceSQL = `
INSERT INTO booking_services (booking_id, service_id, quantity, unit_price)
VALUES ($1, $2, $3, $4)
`

const updateBookingStatusSQL = `
UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1
`

const updateBookingRoomsActiveSQL = `
UPDATE booking_rooms SET active = $2 WHERE booking_id = $1
`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	quote := b.Quote()
	window := b.Window()
	checkIn := pgconv.DateToPgtype(window.CheckIn())
	checkOut := pgconv.DateToPgtype(window.CheckOut())

	var id uuid.UUID
	err := r.db.QueryRow(ctx, insertBookingSQL,
		b.ID(),
		b.UserID(),
		checkIn,
		checkOut,
		b.Status().String(),
		pgconv.UUIDPtrToPgtype(b.DiscountID()),
		pgconv.StringPtrToPgtype(b.DiscountCode()),
		quote.Subtotal.Int64(),
		quote.DiscountAmount().Int64(),
		quote.Total.Int64(),
		pgconv.StringPtrToPgtype(b.Note().Ptr()),
		b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	batch := &pgx.Batch{}
	for _, room := range b.Rooms() {
		batch.Queue(insertBookingRoomSQL,
			id,
			room.Line.RoomID,
			room.Line.RoomTypeID,
			room.Guests.Adults,
			room.Guests.Children,
			room.Guests.Babies,
			room.Line.NightlyPrice.Int64(),
			room.Line.Nights,
			checkIn,
			checkOut,
		)
	}
	for _, service := range b.Services() {
		batch.Queue(insertBookingServiceSQL,
			id,
			service.ServiceID,
			service.Quantity,
			service.UnitPrice.Int64(),
		)
	}

	if err := r.execBatch(ctx, batch); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking lines", err)
	}

	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	if _, err := r.db.Exec(ctx, updateBookingRoomsActiveSQL, b.ID(), b.Status().HoldsRoom()); err != nil {
		return infra.WrapRepoErr("failed to release booking rooms", err)
	}
	return nil
}

func (r *BookingRepository) execBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	results := r.db.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	return results.Close()
}
