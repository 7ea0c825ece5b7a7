package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	queries queries.QuoteQueries
}

func NewQuoteHandler(q queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{queries: q}
}

// @Summary Price a stay
// @Description Preview totals for a selection. A bad discount code is reported in discount_error, not as a failure.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/quotes [post]
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}
	view, err := h.queries.Quote(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err, "quote")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}
