package commands

import (
	"context"

	"hotel-booking/internal/domain/pricing"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"
)

type ValidateDiscountResult struct {
	Code           string
	OrderAmount    int64
	DiscountAmount int64
	FinalAmount    int64
}

type DiscountCommands interface {
	// ValidateDiscount checks a code against an order amount. Usage is not consumed.
	ValidateDiscount(ctx context.Context, req reqdto.ValidateDiscountRequest) (*ValidateDiscountResult, error)
}

type discountCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewDiscountCommands(uow shared.UnitOfWork, clock clock.Clock) DiscountCommands {
	return &discountCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (c *discountCommandsImpl) ValidateDiscount(ctx context.Context, req reqdto.ValidateDiscountRequest) (*ValidateDiscountResult, error) {
	amount, err := pricing.NewVND(req.OrderAmount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	d, err := shared.LoadDiscount(ctx, c.uow.CommandReads(), &req.Code)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errs.ErrDiscountNotFound
	}

	result, err := d.Apply(amount, c.clock.Now())
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	return &ValidateDiscountResult{
		Code:           result.Code,
		OrderAmount:    result.OrderAmount().Int64(),
		DiscountAmount: result.DiscountAmount.Int64(),
		FinalAmount:    result.FinalAmount.Int64(),
	}, nil
}
