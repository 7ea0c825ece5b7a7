package readstore

import (
	"context"
	"encoding/json"
	"time"

	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Line items are aggregated in the same statement so the view is a single snapshot.
const findBookingViewSQL = `
SELECT b.id, b.user_id, u.email AS user_email, u.full_name AS user_full_name,
       b.check_in, b.check_out, b.status, b.subtotal, b.discount_code, b.discount_amount, b.total, b.note,
       b.created_at, b.updated_at,
       COALESCE((
           SELECT json_agg(json_build_object(
                      'room_id', br.room_id,
                      'room_number', r.number,
                      'room_type_id', br.room_type_id,
                      'room_type_name', rt.name,
                      'adults', br.adults,
                      'children', br.children,
                      'babies', br.babies,
                      'nightly_price', br.nightly_price,
                      'nights', br.nights,
                      'line_total', br.nightly_price * br.nights
                  ) ORDER BY r.number)
           FROM booking_rooms br
           JOIN rooms r ON r.id = br.room_id
           JOIN room_types rt ON rt.id = br.room_type_id
           WHERE br.booking_id = b.id
       ), '[]'::json) AS rooms,
       COALESCE((
           SELECT json_agg(json_build_object(
                      'service_id', bs.service_id,
                      'name', s.name,
                      'quantity', bs.quantity,
                      'unit_price', bs.unit_price,
                      'line_total', bs.unit_price * bs.quantity
                  ) ORDER BY s.name)
           FROM booking_services bs
           JOIN services s ON s.id = bs.service_id
           WHERE bs.booking_id = b.id
       ), '[]'::json) AS services
FROM bookings b
JOIN users u ON u.id = b.user_id
WHERE b.id = $1
`

const listBookingsByUserSQL = `
SELECT b.id, b.check_in, b.check_out, b.status, b.total, b.created_at,
       (SELECT count(*) FROM booking_rooms br WHERE br.booking_id = b.id) AS room_count
FROM bookings b
WHERE b.user_id = $1
  AND ($2::timestamptz IS NULL OR (b.created_at, b.id) < ($2::timestamptz, $3::uuid))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

const findBookingSnapshotForUpdateSQL = `
SELECT id, user_id, status, check_in, check_out, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE
`

type bookingViewRow struct {
	ID             uuid.UUID   `db:"id"`
	UserID         uuid.UUID   `db:"user_id"`
	UserEmail      string      `db:"user_email"`
	UserFullName   string      `db:"user_full_name"`
	CheckIn        pgtype.Date `db:"check_in"`
	CheckOut       pgtype.Date `db:"check_out"`
	Status         string      `db:"status"`
	Subtotal       int64       `db:"subtotal"`
	DiscountCode   pgtype.Text `db:"discount_code"`
	DiscountAmount int64       `db:"discount_amount"`
	Total          int64       `db:"total"`
	Note           pgtype.Text `db:"note"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
	Rooms          []byte      `db:"rooms"`
	Services       []byte      `db:"services"`
}

type bookingListRow struct {
	ID        uuid.UUID   `db:"id"`
	CheckIn   pgtype.Date `db:"check_in"`
	CheckOut  pgtype.Date `db:"check_out"`
	Status    string      `db:"status"`
	Total     int64       `db:"total"`
	CreatedAt time.Time   `db:"created_at"`
	RoomCount int         `db:"room_count"`
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingViewSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[bookingViewRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	return toBookingView(row)
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, after *queries.Keyset, limit int) ([]*queries.BookingListItem, error) {
	afterCreatedAt := pgtype.Timestamptz{}
	afterID := pgtype.UUID{}
	if after != nil {
		afterCreatedAt = pgconv.TimeToPgtype(after.CreatedAt)
		afterID = pgconv.UUIDToPgtype(after.ID)
	}

	rows, err := r.db.Query(ctx, listBookingsByUserSQL, userID, afterCreatedAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	listRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[bookingListRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}

	items := make([]*queries.BookingListItem, len(listRows))
	for i, row := range listRows {
		items[i] = &queries.BookingListItem{
			ID:        row.ID,
			CheckIn:   formatDate(row.CheckIn),
			CheckOut:  formatDate(row.CheckOut),
			Status:    row.Status,
			RoomCount: row.RoomCount,
			Total:     row.Total,
			CreatedAt: row.CreatedAt,
		}
	}
	return items, nil
}

// SnapshotForUpdate locks the booking row until the surrounding transaction ends.
func (r *BookingReadStore) SnapshotForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap              shared.BookingSnapshot
		checkIn, checkOut pgtype.Date
	)
	err := r.db.QueryRow(ctx, findBookingSnapshotForUpdateSQL, id).Scan(
		&snap.ID,
		&snap.UserID,
		&snap.Status,
		&checkIn,
		&checkOut,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	snap.CheckIn = pgconv.DateFromPgtype(checkIn, time.UTC)
	snap.CheckOut = pgconv.DateFromPgtype(checkOut, time.UTC)
	return &snap, nil
}

func toBookingView(row bookingViewRow) (*queries.BookingView, error) {
	view := &queries.BookingView{
		ID:             row.ID,
		UserID:         row.UserID,
		UserEmail:      row.UserEmail,
		UserFullName:   row.UserFullName,
		CheckIn:        formatDate(row.CheckIn),
		CheckOut:       formatDate(row.CheckOut),
		Nights:         int(row.CheckOut.Time.Sub(row.CheckIn.Time).Hours() / 24),
		Status:         row.Status,
		Subtotal:       row.Subtotal,
		DiscountCode:   pgconv.StringPtrFromPgtype(row.DiscountCode),
		DiscountAmount: row.DiscountAmount,
		Total:          row.Total,
		Note:           pgconv.StringPtrFromPgtype(row.Note),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if err := json.Unmarshal(row.Rooms, &view.Rooms); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking rooms", errs.Wrap(err, "rooms"))
	}
	if err := json.Unmarshal(row.Services, &view.Services); err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking services", errs.Wrap(err, "services"))
	}
	return view, nil
}

func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(stay.DateLayout)
}
