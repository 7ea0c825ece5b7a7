package stay

import (
	"errors"
	"math"
	"time"
)

const (
	DefaultCheckInHour  = 14
	DefaultCheckOutHour = 12
	DefaultTimeZone     = "Asia/Ho_Chi_Minh"
	DateLayout          = time.DateOnly
)

var (
	ErrCheckOutNotAfterCheckIn = errors.New("check-out must be after check-in")
	ErrCheckInTooEarly         = errors.New("check-in starts at 14:00")
	ErrCheckOutTooLate         = errors.New("check-out must be before 12:00")
	ErrCheckInInPast           = errors.New("check-in date is in the past")
	ErrInvalidHouseRules       = errors.New("invalid house rules")
)

// HouseRules fixes the property's check-in and check-out hours in its own time zone.
type HouseRules struct {
	CheckInHour  int
	CheckOutHour int
	Location     *time.Location
}

func NewHouseRules(checkInHour, checkOutHour int, loc *time.Location) (HouseRules, error) {
	if checkInHour < 0 || checkInHour > 23 || checkOutHour < 0 || checkOutHour > 23 {
		return HouseRules{}, ErrInvalidHouseRules
	}
	if loc == nil {
		return HouseRules{}, ErrInvalidHouseRules
	}
	return HouseRules{CheckInHour: checkInHour, CheckOutHour: checkOutHour, Location: loc}, nil
}

func DefaultHouseRules(loc *time.Location) HouseRules {
	if loc == nil {
		loc = time.UTC
	}
	return HouseRules{CheckInHour: DefaultCheckInHour, CheckOutHour: DefaultCheckOutHour, Location: loc}
}

// Validate applies the stay window checks in order and returns the first failure.
// Same-day checks compare calendar dates in the rules' location.
func (r HouseRules) Validate(checkIn, checkOut, now time.Time) (Window, error) {
	if !checkOut.After(checkIn) {
		return Window{}, ErrCheckOutNotAfterCheckIn
	}

	localNow := now.In(r.location())
	today := DateOf(localNow)

	if DateOf(checkIn.In(r.location())).Equal(today) && localNow.Before(r.at(today, r.CheckInHour)) {
		return Window{}, ErrCheckInTooEarly
	}
	if DateOf(checkOut.In(r.location())).Equal(today) && !localNow.Before(r.at(today, r.CheckOutHour)) {
		return Window{}, ErrCheckOutTooLate
	}

	return Window{checkIn: checkIn, checkOut: checkOut}, nil
}

// ValidateNew is Validate plus the past-date check that only applies to new bookings.
func (r HouseRules) ValidateNew(checkIn, checkOut, now time.Time) (Window, error) {
	w, err := r.Validate(checkIn, checkOut, now)
	if err != nil {
		return Window{}, err
	}
	if DateOf(checkIn.In(r.location())).Before(DateOf(now.In(r.location()))) {
		return Window{}, ErrCheckInInPast
	}
	return w, nil
}

// ParseDate reads a YYYY-MM-DD date as local midnight in the rules' location.
func (r HouseRules) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, r.location())
}

func (r HouseRules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r HouseRules) at(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, r.location())
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type Window struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewWindow rebuilds a window from persisted dates without the house-hour checks.
func NewWindow(checkIn, checkOut time.Time) (Window, error) {
	if !checkOut.After(checkIn) {
		return Window{}, ErrCheckOutNotAfterCheckIn
	}
	return Window{checkIn: checkIn, checkOut: checkOut}, nil
}

func (w Window) CheckIn() time.Time {
	return w.checkIn
}

func (w Window) CheckOut() time.Time {
	return w.checkOut
}

// Nights counts calendar nights between date-only bounds, so a 23h or 25h
// night across a DST change is still one. Bounds carrying a time of day
// count started 24h periods. Never less than one.
func (w Window) Nights() int {
	var n int
	if isMidnight(w.checkIn) && isMidnight(w.checkOut) {
		n = int(civilDay(w.checkOut).Sub(civilDay(w.checkIn)).Hours() / 24)
	} else {
		n = int(math.Ceil(w.checkOut.Sub(w.checkIn).Hours() / 24))
	}
	if n < 1 {
		return 1
	}
	return n
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// civilDay moves t's local date onto UTC, where every day is 24h long.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (w Window) IsZero() bool {
	return w.checkIn.IsZero() && w.checkOut.IsZero()
}
