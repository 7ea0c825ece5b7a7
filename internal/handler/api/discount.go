package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	commands commands.DiscountCommands
	queries  queries.DiscountQueries
}

func NewDiscountHandler(cmds commands.DiscountCommands, q queries.DiscountQueries) *DiscountHandler {
	return &DiscountHandler{commands: cmds, queries: q}
}

// @Summary Validate discount code
// @Description Check a code against an order amount without consuming it
// @Tags discounts
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateDiscountRequest true "Validation request"
// @Success 200 {object} resdto.DiscountValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/discounts/validate [post]
func (h *DiscountHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}
	result, err := h.commands.ValidateDiscount(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err, "validate discount")
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidateDiscountResult(result))
}

// @Summary Discount hints
// @Description Active codes with eligibility for the given order amount
// @Tags discounts
// @Produce json
// @Param order_amount query int false "Order amount in VND"
// @Success 200 {array} resdto.DiscountHintResponse
// @Failure 400 {object} httperr.Response
// @Router /api/discounts/hints [get]
func (h *DiscountHandler) Hints(c *gin.Context) {
	var q reqdto.DiscountHintsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindingError(c, err)
		return
	}
	hints, err := h.queries.Hints(c.Request.Context(), q.OrderAmount)
	if err != nil {
		abortWithUsecaseError(c, err, "discount hints")
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": resdto.FromDiscountHints(hints)})
}
