package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	CreateBookingEndpoint = "POST /api/bookings"
	IdempotencyTTL        = 24 * time.Hour
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor auth.Session, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor auth.Session) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string, actor auth.Session) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	actor auth.Session,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	userID := actor.UserID()
	requestHash := c.calculateRequestHash(req)

	replayed, err := c.claimIdempotencyKey(ctx, idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{
			Booking:    replayed,
			IsReplayed: true,
		}, nil
	}

	view, err := c.createNewBooking(ctx, req, userID, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, idempotencyKey, userID)
		return nil, err
	}
	return &CreateBookingResult{
		Booking:    view,
		IsReplayed: false,
	}, nil
}

// claimIdempotencyKey returns a non-nil view when the request was already completed.
// A nil view with a nil error means this call owns the key and must do the work.
func (c *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*queries.BookingView, error) {
	now := c.clock.Now()

	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var insertErr error
		inserted, insertErr = tx.Idempotency().TryInsert(ctx, key, userID, CreateBookingEndpoint, requestHash, now.Add(IdempotencyTTL))
		return insertErr
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// released by a failed attempt between our insert and read
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrDuplicateBooking
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.Wrap(errs.ErrIdempotencyCheckFailed, "completed request missing result booking ID")
		}
		return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)

	case shared.IdempotencyStatusProcessing:
		if now.Before(existing.ExpiresAt) {
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, c.reclaimExpiredKey(ctx, key, userID, requestHash, now)

	default:
		return nil, errs.Wrapf(errs.ErrIdempotencyCheckFailed, "unknown idempotency status %q", existing.Status)
	}
}

// reclaimExpiredKey takes over a key whose previous owner never finished.
func (c *bookingCommandsImpl) reclaimExpiredKey(ctx context.Context, key, userID uuid.UUID, requestHash string, now time.Time) error {
	var claimed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var claimErr error
		claimed, claimErr = tx.Idempotency().ClaimExpired(ctx, key, userID, requestHash, now.Add(IdempotencyTTL))
		return claimErr
	})
	if err != nil {
		return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if claimed == 0 {
		return errs.ErrIdempotencyInProgress
	}
	return nil
}

func (c *bookingCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "user_id", userID, "error", err.Error())
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	entity, err := c.buildBooking(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	bookingID, err := c.executeBookingTransaction(ctx, entity, idempotencyKey, userID)
	if err != nil {
		return nil, err
	}

	// Read-after-write: Get the complete booking view from read store
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// buildBooking prices the request from catalog rows; nothing client-supplied but ids and counts is used.
func (c *bookingCommandsImpl) buildBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*booking.Booking, error) {
	checkIn, checkOut, err := shared.ParseStayDates(c.factory.Rules, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	reads := c.uow.CommandReads()
	rooms, services, err := shared.LoadSelections(ctx, reads, req.RoomRequests(), req.ServiceRequests())
	if err != nil {
		return nil, err
	}

	discountEntity, err := shared.LoadDiscount(ctx, reads, req.GetDiscountCode())
	if err != nil {
		return nil, err
	}

	note, err := booking.NewNote(req.GetNote())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	entity, err := c.factory.CreateBooking(userID, checkIn, checkOut, rooms, services, discountEntity, note)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) executeBookingTransaction(
	ctx context.Context,
	entity *booking.Booking,
	idempotencyKey, userID uuid.UUID,
) (uuid.UUID, error) {
	var bookingID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Bookings().Create(ctx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrRoomUnavailable)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if discountID := entity.DiscountID(); discountID != nil {
			if err := tx.Discounts().ConsumeUsage(ctx, *discountID); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, errs.ErrDiscountExhausted)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := c.enqueueNotification(ctx, tx, id, shared.TopicBookingCreated, entity.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, userID, c.calculateIDHash(id), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		bookingID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return bookingID, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor auth.Session) (*queries.BookingView, error) {
	err := c.changeStatus(ctx, bookingID, actor, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(now, actor.IsStaff())
	})
	if err != nil {
		return nil, err
	}
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string, actor auth.Session) (*queries.BookingView, error) {
	if !actor.IsStaff() {
		return nil, errs.ErrForbidden
	}

	next, err := booking.NewStatus(status)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	err = c.changeStatus(ctx, bookingID, actor, func(b *booking.Booking, now time.Time) error {
		if next == booking.StatusCancelled {
			return b.Cancel(now, true)
		}
		return b.ChangeStatus(next, now)
	})
	if err != nil {
		return nil, err
	}
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// changeStatus locks the booking row, applies mutate and persists the result in one transaction.
func (c *bookingCommandsImpl) changeStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	actor auth.Session,
	mutate func(b *booking.Booking, now time.Time) error,
) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !actor.CanAccess(snap.UserID) {
			return errs.ErrBookingNotFound
		}

		entity, err := shared.BookingFromSnapshot(snap, c.factory.Rules.Location)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := mutate(entity, c.clock.Now()); err != nil {
			return shared.ClassifyDomainError(err)
		}

		if err := tx.Bookings().UpdateStatus(ctx, entity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		topic := shared.TopicBookingStatus
		if entity.Status() == booking.StatusCancelled {
			topic = shared.TopicBookingCancelled
		}
		if err := c.enqueueNotification(ctx, tx, entity.ID(), topic, entity.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	bookingID uuid.UUID,
	topic string,
	status booking.Status,
) error {
	payload, err := json.Marshal(shared.BookingNotificationPayload{
		BookingID: bookingID,
		Type:      topic,
		Status:    status.String(),
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, shared.NotificationKindEmail, topic, payload, c.clock.Now())
}

func (c *bookingCommandsImpl) calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (c *bookingCommandsImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
