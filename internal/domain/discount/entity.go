package discount

import (
	"errors"
	"time"

	"hotel-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInactive          = errors.New("discount code is not active")
	ErrNotYetValid       = errors.New("discount code is not yet valid")
	ErrExpired           = errors.New("discount code has expired")
	ErrUsageLimitReached = errors.New("discount code usage limit reached")
	ErrBelowMinOrder     = errors.New("order amount is below the minimum for this code")
)

type Discount struct {
	id                uuid.UUID
	code              Code
	description       string
	discountType      Type
	value             int64
	minOrderAmount    pricing.VND
	maxDiscountAmount *pricing.VND
	validFrom         *time.Time
	validUntil        *time.Time
	usageLimit        *int
	usedCount         int
	isActive          bool
}

// Attrs carries persisted discount code columns into NewDiscount.
type Attrs struct {
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

func NewDiscount(a Attrs) (*Discount, error) {
	code, err := NewCode(a.Code)
	if err != nil {
		return nil, err
	}

	discountType, err := NewType(a.Type)
	if err != nil {
		return nil, err
	}

	switch discountType {
	case TypePercentage:
		if a.Value < 1 || a.Value > 100 {
			return nil, ErrInvalidPercentage
		}
	case TypeFixed:
		if a.Value < 1 {
			return nil, ErrInvalidFixedAmount
		}
	}

	minOrder, err := pricing.NewVND(a.MinOrderAmount)
	if err != nil {
		return nil, ErrInvalidMinOrder
	}

	var maxDiscount *pricing.VND
	if a.MaxDiscountAmount != nil {
		v, err := pricing.NewVND(*a.MaxDiscountAmount)
		if err != nil {
			return nil, ErrInvalidMaxDiscount
		}
		maxDiscount = &v
	}

	if a.ValidFrom != nil && a.ValidUntil != nil && a.ValidFrom.After(*a.ValidUntil) {
		return nil, ErrInvalidValidityRange
	}
	if (a.UsageLimit != nil && *a.UsageLimit < 0) || a.UsedCount < 0 {
		return nil, ErrInvalidUsageLimit
	}

	return &Discount{
		id:                a.ID,
		code:              code,
		description:       a.Description,
		discountType:      discountType,
		value:             a.Value,
		minOrderAmount:    minOrder,
		maxDiscountAmount: maxDiscount,
		validFrom:         a.ValidFrom,
		validUntil:        a.ValidUntil,
		usageLimit:        a.UsageLimit,
		usedCount:         a.UsedCount,
		isActive:          a.IsActive,
	}, nil
}

func (d *Discount) IsValidAt(t time.Time) bool {
	if d.validFrom != nil && t.Before(*d.validFrom) {
		return false
	}
	if d.validUntil != nil && t.After(*d.validUntil) {
		return false
	}
	return true
}

// ValidateUsage checks everything except the order amount.
func (d *Discount) ValidateUsage(t time.Time) error {
	if !d.isActive {
		return ErrInactive
	}
	if d.validFrom != nil && t.Before(*d.validFrom) {
		return ErrNotYetValid
	}
	if d.validUntil != nil && t.After(*d.validUntil) {
		return ErrExpired
	}
	if d.IsExhausted() {
		return ErrUsageLimitReached
	}
	return nil
}

func (d *Discount) IsExhausted() bool {
	return d.usageLimit != nil && d.usedCount >= *d.usageLimit
}

// MeetsMinOrder is advisory for clients deciding whether to suggest the code.
func (d *Discount) MeetsMinOrder(orderAmount pricing.VND) bool {
	return orderAmount >= d.minOrderAmount
}

// CalculateDiscountAmount never exceeds the order amount.
func (d *Discount) CalculateDiscountAmount(orderAmount pricing.VND) pricing.VND {
	if orderAmount <= 0 {
		return 0
	}

	var amount pricing.VND
	switch d.discountType {
	case TypePercentage:
		amount = pricing.VND(int64(orderAmount) * d.value / 100)
		if d.maxDiscountAmount != nil && amount > *d.maxDiscountAmount {
			amount = *d.maxDiscountAmount
		}
	case TypeFixed:
		amount = pricing.VND(d.value)
	}

	return min(amount, orderAmount)
}

// Apply validates the code against orderAmount at time now and returns the
// discounted totals. It does not consume usage.
func (d *Discount) Apply(orderAmount pricing.VND, now time.Time) (pricing.DiscountResult, error) {
	if err := d.ValidateUsage(now); err != nil {
		return pricing.DiscountResult{}, err
	}
	if !d.MeetsMinOrder(orderAmount) {
		return pricing.DiscountResult{}, ErrBelowMinOrder
	}

	amount := d.CalculateDiscountAmount(orderAmount)
	return pricing.DiscountResult{
		Code:           d.code.String(),
		DiscountAmount: amount,
		FinalAmount:    orderAmount - amount,
	}, nil
}

func (d *Discount) ID() uuid.UUID                   { return d.id }
func (d *Discount) Code() Code                      { return d.code }
func (d *Discount) Description() string             { return d.description }
func (d *Discount) Type() Type                      { return d.discountType }
func (d *Discount) Value() int64                    { return d.value }
func (d *Discount) MinOrderAmount() pricing.VND     { return d.minOrderAmount }
func (d *Discount) MaxDiscountAmount() *pricing.VND { return d.maxDiscountAmount }
func (d *Discount) ValidFrom() *time.Time           { return d.validFrom }
func (d *Discount) ValidUntil() *time.Time          { return d.validUntil }
func (d *Discount) UsageLimit() *int                { return d.usageLimit }
func (d *Discount) UsedCount() int                  { return d.usedCount }
func (d *Discount) IsActive() bool                  { return d.isActive }
