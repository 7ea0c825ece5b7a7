package pricing

import (
	"errors"
	"strconv"
)

var (
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrInvalidNights   = errors.New("nights must be at least 1")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// VND is an amount in Vietnamese dong. The currency has no minor unit.
type VND int64

func NewVND(amount int64) (VND, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return VND(amount), nil
}

func (v VND) Int64() int64 {
	return int64(v)
}

func (v VND) Times(n int) VND {
	return v * VND(n)
}

// String renders the amount with thousands separators, e.g. "1,800,000 VND".
func (v VND) String() string {
	digits := strconv.FormatInt(int64(v), 10)
	neg := false
	if v < 0 {
		neg = true
		digits = digits[1:]
	}

	out := make([]byte, 0, len(digits)+len(digits)/3+5)
	if neg {
		out = append(out, '-')
	}
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out) + " VND"
}
