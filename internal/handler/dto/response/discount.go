package response

import (
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
)

type DiscountValidationResponse struct {
	Code           string `json:"code"`
	OrderAmount    int64  `json:"order_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
}

func FromValidateDiscountResult(r *commands.ValidateDiscountResult) *DiscountValidationResponse {
	return &DiscountValidationResponse{
		Code:           r.Code,
		OrderAmount:    r.OrderAmount,
		DiscountAmount: r.DiscountAmount,
		FinalAmount:    r.FinalAmount,
	}
}

type DiscountHintResponse struct {
	Code           string `json:"code"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	Value          int64  `json:"value"`
	MinOrderAmount int64  `json:"min_order_amount"`
	ValidUntil     *int64 `json:"valid_until,omitempty"`
	Eligible       bool   `json:"eligible"`
	Shortfall      int64  `json:"shortfall"`
}

func FromDiscountHints(hints []*queries.DiscountHintView) []*DiscountHintResponse {
	res := make([]*DiscountHintResponse, len(hints))
	for i, h := range hints {
		var until *int64
		if h.ValidUntil != nil {
			u := h.ValidUntil.Unix()
			until = &u
		}
		res[i] = &DiscountHintResponse{
			Code:           h.Code,
			Description:    h.Description,
			Type:           h.Type,
			Value:          h.Value,
			MinOrderAmount: h.MinOrderAmount,
			ValidUntil:     until,
			Eligible:       h.Eligible,
			Shortfall:      h.Shortfall,
		}
	}
	return res
}
