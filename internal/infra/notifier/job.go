package notifier

import (
	"context"
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// Job is a claimed notification_jobs row. Field order matches the claim query's RETURNING list.
type Job struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

type JobStore interface {
	// ClaimDue moves up to limit due jobs to running and returns them.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkRetry(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error
}

type BookingLookup interface {
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type IdempotencyCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
