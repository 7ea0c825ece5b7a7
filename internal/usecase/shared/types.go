package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)

type RoomSnapshot struct {
	ID           uuid.UUID
	Number       string
	FloorID      uuid.UUID
	Status       string
	RoomTypeID   uuid.UUID
	RoomTypeName string
	NightlyPrice int64
	Capacity     int
	MaxAdults    int
	MaxChildren  int
}

type ServiceSnapshot struct {
	ID        uuid.UUID
	Name      string
	UnitPrice int64
	IsActive  bool
}

type DiscountSnapshot struct {
	ID                uuid.UUID
	Code              string
	Description       string
	Type              string
	Value             int64
	MinOrderAmount    int64
	MaxDiscountAmount *int64
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	UsageLimit        *int
	UsedCount         int
	IsActive          bool
}

type BookingSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    string
	CheckIn   time.Time
	CheckOut  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

const (
	NotificationKindEmail = "email"

	TopicBookingCreated   = "booking_created"
	TopicBookingCancelled = "booking_cancelled"
	TopicBookingStatus    = "booking_status_changed"
)

// BookingNotificationPayload is stored as the notification job payload.
type BookingNotificationPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status,omitempty"`
}
