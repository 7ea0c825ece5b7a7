package request

type ValidateDiscountRequest struct {
	Code        string `json:"code" binding:"required,discountcode"`
	OrderAmount int64  `json:"order_amount" binding:"vnd"`
}

type DiscountHintsQuery struct {
	OrderAmount int64 `form:"order_amount" binding:"vnd"`
}
