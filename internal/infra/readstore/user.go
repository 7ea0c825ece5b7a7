package readstore

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserByIDSQL = `
SELECT id, email, full_name, phone, role, is_active, password_hash
FROM users
WHERE id = $1
`

// Only the active row can own an email, so at most one row matches.
const findUserByEmailSQL = `
SELECT id, email, full_name, phone, role, is_active, password_hash
FROM users
WHERE email = $1 AND is_active
`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{
		db: db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, _, err := r.scanUser(ctx, findUserByIDSQL, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	view, hash, err := r.scanUser(ctx, findUserByEmailSQL, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return view, hash, nil
}

func (r *UserReadStore) scanUser(ctx context.Context, sql string, arg any) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		phone        pgtype.Text
		passwordHash string
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&view.ID,
		&view.Email,
		&view.FullName,
		&phone,
		&view.Role,
		&view.IsActive,
		&passwordHash,
	)
	if err != nil {
		return nil, "", err
	}
	view.Phone = pgconv.StringPtrFromPgtype(phone)
	return &view, passwordHash, nil
}
