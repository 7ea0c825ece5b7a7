package room

import (
	"errors"
	"strings"

	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name is too long (max 255 characters)")
	ErrEmptyRoomNumber = errors.New("room number cannot be empty")
	ErrInvalidStatus   = errors.New("invalid room status")
	ErrNotBookable     = errors.New("room is not open for booking")
	ErrServiceInactive = errors.New("service is not offered")
)

const MaxNameLength = 255

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusMaintenance:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

type RoomType struct {
	id           uuid.UUID
	name         string
	nightlyPrice pricing.VND
	limits       guest.Limits
}

func NewRoomType(id uuid.UUID, name string, nightlyPrice int64, capacity, maxAdults, maxChildren int) (*RoomType, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	price, err := pricing.NewVND(nightlyPrice)
	if err != nil {
		return nil, err
	}
	limits, err := guest.NewLimits(capacity, maxAdults, maxChildren)
	if err != nil {
		return nil, err
	}

	return &RoomType{id: id, name: name, nightlyPrice: price, limits: limits}, nil
}

func (t *RoomType) ID() uuid.UUID             { return t.id }
func (t *RoomType) Name() string              { return t.name }
func (t *RoomType) NightlyPrice() pricing.VND { return t.nightlyPrice }
func (t *RoomType) Limits() guest.Limits      { return t.limits }

type Room struct {
	id         uuid.UUID
	number     string
	floorID    uuid.UUID
	roomTypeID uuid.UUID
	status     Status
}

func NewRoom(id uuid.UUID, number string, floorID, roomTypeID uuid.UUID, status string) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyRoomNumber
	}
	st, err := NewStatus(status)
	if err != nil {
		return nil, err
	}
	return &Room{id: id, number: number, floorID: floorID, roomTypeID: roomTypeID, status: st}, nil
}

// EnsureBookable reports rooms taken out of service. Date overlap is checked
// against existing bookings elsewhere.
func (r *Room) EnsureBookable() error {
	if r.status != StatusAvailable {
		return ErrNotBookable
	}
	return nil
}

func (r *Room) ID() uuid.UUID         { return r.id }
func (r *Room) Number() string        { return r.number }
func (r *Room) FloorID() uuid.UUID    { return r.floorID }
func (r *Room) RoomTypeID() uuid.UUID { return r.roomTypeID }
func (r *Room) Status() Status        { return r.status }

// Service is an extra sold per booking, e.g. breakfast or airport pickup.
type Service struct {
	id        uuid.UUID
	name      string
	unitPrice pricing.VND
	isActive  bool
}

func NewService(id uuid.UUID, name string, unitPrice int64, isActive bool) (*Service, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	price, err := pricing.NewVND(unitPrice)
	if err != nil {
		return nil, err
	}
	return &Service{id: id, name: name, unitPrice: price, isActive: isActive}, nil
}

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) Name() string           { return s.name }
func (s *Service) UnitPrice() pricing.VND { return s.unitPrice }
func (s *Service) IsActive() bool         { return s.isActive }

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
