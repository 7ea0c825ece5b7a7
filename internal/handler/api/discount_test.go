//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel-booking/internal/handler/api"
	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/validation"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/tests/common/httptest"
	commandsmock "hotel-booking/tests/mock/commands"
	queriesmock "hotel-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiscountHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDiscountCommands
	mockQueries  *queriesmock.MockDiscountQueries
}

func (s *DiscountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	validation.Register()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDiscountCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDiscountQueries(s.mockCtrl)

	h := api.NewDiscountHandler(s.mockCommands, s.mockQueries)
	s.router = gin.New()
	s.router.POST("/discounts/validate", h.Validate)
	s.router.GET("/discounts/hints", h.Hints)
}

func (s *DiscountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiscountHandlerSuite(t *testing.T) {
	suite.Run(t, new(DiscountHandlerTestSuite))
}

func (s *DiscountHandlerTestSuite) TestValidate() {
	req := reqdto.ValidateDiscountRequest{Code: "SUMMER10", OrderAmount: 2_000_000}

	s.Run("成功: 割引額と支払額を返す", func() {
		s.mockCommands.EXPECT().ValidateDiscount(gomock.Any(), req).Return(&commands.ValidateDiscountResult{
			Code:           "SUMMER10",
			OrderAmount:    2_000_000,
			DiscountAmount: 200_000,
			FinalAmount:    1_800_000,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/validate", req, "")

		var response resdto.DiscountValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(200_000), response.DiscountAmount)
		s.Equal(int64(1_800_000), response.FinalAmount)
	})

	s.Run("エラー: リクエスト検証は400", func() {
		cases := map[string]any{
			"コード欠落":   map[string]any{"order_amount": 1000},
			"コード形式不正": map[string]any{"code": "💸", "order_amount": 1000},
			"負の金額":    map[string]any{"code": "SUMMER10", "order_amount": -1},
			"金額の上限超過": map[string]any{"code": "SUMMER10", "order_amount": validation.MaxOrderAmount + 1},
		}
		for name, body := range cases {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/validate", body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("エラー: ユースケースのエラー", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{name: "存在しない", err: errs.ErrDiscountNotFound, status: http.StatusNotFound, msg: "Discount code not found"},
			{name: "期限切れ", err: errs.Mark(errors.New("discount code has expired"), errs.ErrInvalidDiscount), status: http.StatusUnprocessableEntity, msg: "cannot be applied"},
			{name: "上限到達", err: errs.ErrDiscountExhausted, status: http.StatusConflict, msg: "usage limit reached"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ValidateDiscount(gomock.Any(), req).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/validate", req, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})
}

func (s *DiscountHandlerTestSuite) TestHints() {
	until := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)

	s.Run("成功: 注文金額に対する利用可否を返す", func() {
		s.mockQueries.EXPECT().Hints(gomock.Any(), int64(500_000)).Return([]*queries.DiscountHintView{
			{Code: "SUMMER10", Type: "percentage", Value: 10, MinOrderAmount: 1_000_000, ValidUntil: &until, Shortfall: 500_000},
			{Code: "FLAT200K", Type: "fixed", Value: 200_000, Eligible: true},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/discounts/hints?order_amount=500000", nil, "")

		var response struct {
			Discounts []resdto.DiscountHintResponse `json:"discounts"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Discounts, 2)
		s.False(response.Discounts[0].Eligible)
		s.Equal(int64(500_000), response.Discounts[0].Shortfall)
		s.Require().NotNil(response.Discounts[0].ValidUntil)
		s.Equal(until.Unix(), *response.Discounts[0].ValidUntil)
		s.True(response.Discounts[1].Eligible)
	})

	s.Run("エラー: 金額が数値でない", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/discounts/hints?order_amount=lots", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
