package guest

import "errors"

const (
	// MaxGuestsPerRoom caps adults plus children regardless of room type.
	MaxGuestsPerRoom = 4
	MaxBabies        = 2
)

var (
	ErrNoAdult             = errors.New("at least one adult is required")
	ErrNegativeCount       = errors.New("guest counts cannot be negative")
	ErrExceedsHardCap      = errors.New("exceeds 4 guests")
	ErrExceedsRoomCapacity = errors.New("exceeds room type capacity")
	ErrTooManyAdults       = errors.New("too many adults for this room type")
	ErrTooManyChildren     = errors.New("too many children for this room type")
	ErrTooManyBabies       = errors.New("at most 2 babies per room")
	ErrInvalidLimits       = errors.New("invalid room type guest limits")
)

type Limits struct {
	Capacity    int
	MaxAdults   int
	MaxChildren int
}

func NewLimits(capacity, maxAdults, maxChildren int) (Limits, error) {
	if capacity < 1 || maxAdults < 1 || maxChildren < 0 {
		return Limits{}, ErrInvalidLimits
	}
	return Limits{Capacity: capacity, MaxAdults: maxAdults, MaxChildren: maxChildren}, nil
}

// EffectiveCapacity is the room type capacity bounded by the per-room hard cap.
func (l Limits) EffectiveCapacity() int {
	return min(l.Capacity, MaxGuestsPerRoom)
}

type Count struct {
	Adults   int
	Children int
	Babies   int
}

// Occupants counts guests that take capacity. Babies do not.
func (c Count) Occupants() int {
	return c.Adults + c.Children
}

func Validate(c Count, l Limits) error {
	switch {
	case c.Adults < 1:
		return ErrNoAdult
	case c.Children < 0 || c.Babies < 0:
		return ErrNegativeCount
	case c.Occupants() > MaxGuestsPerRoom:
		return ErrExceedsHardCap
	case c.Occupants() > l.EffectiveCapacity():
		return ErrExceedsRoomCapacity
	case c.Adults > l.MaxAdults:
		return ErrTooManyAdults
	case c.Children > l.MaxChildren:
		return ErrTooManyChildren
	case c.Babies > MaxBabies:
		return ErrTooManyBabies
	}
	return nil
}
