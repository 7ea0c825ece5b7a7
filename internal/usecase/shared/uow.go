package shared

import (
	"context"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Discounts() DiscountRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	DiscountByCode(ctx context.Context, code string) (*DiscountSnapshot, error)
	// BookingByID locks the booking row when called inside a transaction.
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// Create returns a KindConflict error when a room is already held for overlapping dates.
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type DiscountRepository interface {
	// ConsumeUsage returns a KindConflict error once the usage limit is reached.
	ConsumeUsage(ctx context.Context, discountID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call created the record.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	Release(ctx context.Context, key, userID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
