package readstore

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listRoomTypesSQL = `
SELECT rt.id, rt.name, rt.description, rt.nightly_price, rt.capacity, rt.max_adults, rt.max_children, rt.image_url,
       (SELECT count(*) FROM rooms r WHERE r.room_type_id = rt.id AND r.status = 'available') AS room_count
FROM room_types rt
`

const findRoomTypeSQL = listRoomTypesSQL + `WHERE rt.id = $1`

const listServicesSQL = `
SELECT id, name, description, unit_price
FROM services
WHERE is_active
ORDER BY name
`

// An active booking_room whose stay overlaps [check_in, check_out) holds the room.
const findAvailableRoomsSQL = `
SELECT r.id, r.number, f.level AS floor_level, rt.id AS room_type_id, rt.name AS room_type_name,
       rt.nightly_price, rt.capacity, rt.max_adults, rt.max_children
FROM rooms r
JOIN floors f ON f.id = r.floor_id
JOIN room_types rt ON rt.id = r.room_type_id
WHERE r.status = 'available'
  AND ($3::uuid IS NULL OR r.room_type_id = $3::uuid)
  AND NOT EXISTS (
      SELECT 1 FROM booking_rooms br
      WHERE br.room_id = r.id
        AND br.active
        AND br.stay && daterange($1::date, $2::date, '[)')
  )
ORDER BY f.level, r.number
`

const findRoomSnapshotSQL = `
SELECT r.id, r.number, r.floor_id, r.status, rt.id AS room_type_id, rt.name AS room_type_name,
       rt.nightly_price, rt.capacity, rt.max_adults, rt.max_children
FROM rooms r
JOIN room_types rt ON rt.id = r.room_type_id
WHERE r.id = $1
`

const findServiceSnapshotSQL = `
SELECT id, name, unit_price, is_active
FROM services
WHERE id = $1
`

type roomTypeRow struct {
	ID           uuid.UUID   `db:"id"`
	Name         string      `db:"name"`
	Description  string      `db:"description"`
	NightlyPrice int64       `db:"nightly_price"`
	Capacity     int         `db:"capacity"`
	MaxAdults    int         `db:"max_adults"`
	MaxChildren  int         `db:"max_children"`
	ImageURL     pgtype.Text `db:"image_url"`
	RoomCount    int         `db:"room_count"`
}

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

func (r *CatalogReadStore) ListRoomTypes(ctx context.Context) ([]*queries.RoomTypeView, error) {
	rows, err := r.db.Query(ctx, listRoomTypesSQL+`ORDER BY rt.nightly_price, rt.name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room types", err)
	}

	typeRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[roomTypeRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan room types", err)
	}

	views := make([]*queries.RoomTypeView, len(typeRows))
	for i, row := range typeRows {
		views[i] = toRoomTypeView(row)
	}
	return views, nil
}

func (r *CatalogReadStore) FindRoomType(ctx context.Context, id uuid.UUID) (*queries.RoomTypeView, error) {
	rows, err := r.db.Query(ctx, findRoomTypeSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room type", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[roomTypeRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan room type", err)
	}
	return toRoomTypeView(row), nil
}

func (r *CatalogReadStore) ListServices(ctx context.Context) ([]*queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, listServicesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}

	views, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[queries.ServiceView])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan services", err)
	}
	return views, nil
}

func (r *CatalogReadStore) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomTypeID *uuid.UUID) ([]*queries.AvailableRoomView, error) {
	rows, err := r.db.Query(ctx, findAvailableRoomsSQL,
		pgconv.DateToPgtype(checkIn),
		pgconv.DateToPgtype(checkOut),
		pgconv.UUIDPtrToPgtype(roomTypeID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find available rooms", err)
	}

	views, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[queries.AvailableRoomView])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan available rooms", err)
	}
	return views, nil
}

func (r *CatalogReadStore) RoomSnapshot(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var snap shared.RoomSnapshot
	err := r.db.QueryRow(ctx, findRoomSnapshotSQL, id).Scan(
		&snap.ID,
		&snap.Number,
		&snap.FloorID,
		&snap.Status,
		&snap.RoomTypeID,
		&snap.RoomTypeName,
		&snap.NightlyPrice,
		&snap.Capacity,
		&snap.MaxAdults,
		&snap.MaxChildren,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &snap, nil
}

func (r *CatalogReadStore) ServiceSnapshot(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	var snap shared.ServiceSnapshot
	err := r.db.QueryRow(ctx, findServiceSnapshotSQL, id).Scan(&snap.ID, &snap.Name, &snap.UnitPrice, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return &snap, nil
}

func toRoomTypeView(row roomTypeRow) *queries.RoomTypeView {
	return &queries.RoomTypeView{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		NightlyPrice: row.NightlyPrice,
		Capacity:     row.Capacity,
		MaxAdults:    row.MaxAdults,
		MaxChildren:  row.MaxChildren,
		ImageURL:     pgconv.StringPtrFromPgtype(row.ImageURL),
		RoomCount:    row.RoomCount,
	}
}
