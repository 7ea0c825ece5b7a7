package repository

import (
	"context"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/patch"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createUserSQL = `
INSERT INTO users (id, email, password_hash, full_name, phone, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

const updateUserLastLoginSQL = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1
`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create returns a KindDuplicateKey error when an active user already owns the email.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.FullName(),
		pgconv.StringPtrToPgtype(patch.NonEmpty(u.Phone())),
		u.Role().String(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, updateUserLastLoginSQL, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
