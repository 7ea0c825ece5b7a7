package validation

import (
	"sync"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/discount"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxOrderAmount bounds client-supplied VND amounts (one trillion dong).
const MaxOrderAmount int64 = 1_000_000_000_000

var registerOnce sync.Once

// Register installs the custom binding tags on gin's validator engine.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("vnd", vnd)
			_ = v.RegisterValidation("roomcount", roomCount)
			_ = v.RegisterValidation("discountcode", discountCode)
		}
	})
}

var vnd validator.Func = func(fl validator.FieldLevel) bool {
	amount := fl.Field().Int()
	return amount >= 0 && amount <= MaxOrderAmount
}

var roomCount validator.Func = func(fl validator.FieldLevel) bool {
	n := fl.Field().Len()
	return n >= 1 && n <= booking.MaxRoomsPerBooking
}

var discountCode validator.Func = func(fl validator.FieldLevel) bool {
	_, err := discount.NewCode(fl.Field().String())
	return err == nil
}
