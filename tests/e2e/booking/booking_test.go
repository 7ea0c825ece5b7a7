//go:build e2e

package booking_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/tests/common/authtest"
	"hotel-booking/tests/common/builder"
	"hotel-booking/tests/common/dbtest"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL  = "/api/bookings"
	quotesURL    = "/api/quotes"
	availableURL = "/api/rooms/available"
	validateURL  = "/api/discounts/validate"
	hintsURL     = "/api/discounts/hints"
)

type bookingSuite struct {
	e2e.SharedSuite
	customerToken string
	otherToken    string
	staffToken    string
	checkIn       string
	checkOut      string
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	// far enough ahead that the past-date rule never trips, whatever the house time zone
	start := time.Now().AddDate(0, 1, 0)
	s.checkIn = start.Format(time.DateOnly)
	s.checkOut = start.AddDate(0, 0, 2).Format(time.DateOnly)
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.customerToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
	s.otherToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "other@example.com", string(user.RoleCustomer))
	s.staffToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "frontdesk@example.com", string(user.RoleStaff))
}

func (s *bookingSuite) newBooking() *builder.BookingBuilder {
	return builder.NewBookingBuilder().
		WithStay(s.checkIn, s.checkOut).
		WithRoom(dbtest.Room201ID, 2, 0, 0)
}

func (s *bookingSuite) create(body any, key uuid.UUID, token string) *resdto.BookingResponse {
	s.T().Helper()
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, body,
		map[string]string{"Idempotency-Key": key.String()}, token)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var res resdto.BookingResponse
	require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &res))
	return &res
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("部屋とサービスと割引を含む予約", func() {
		t := s.T()
		body := s.newBooking().
			WithService(dbtest.ServiceBreakfastID, 2).
			WithDiscountCode("summer10").
			WithNote("late arrival").
			BuildDTO()

		res := s.create(body, uuid.New(), s.customerToken)

		// 900,000 x 2 nights + 150,000 x 2 = 2,100,000; 10% off
		require.Equal(t, "pending", res.Status)
		require.Equal(t, 2, res.Nights)
		require.Equal(t, int64(2_100_000), res.Subtotal)
		require.Equal(t, int64(210_000), res.DiscountAmount)
		require.Equal(t, int64(1_890_000), res.Total)
		require.NotNil(t, res.DiscountCode)
		require.Equal(t, "SUMMER10", *res.DiscountCode)
		require.Len(t, res.Rooms, 1)
		require.Equal(t, "201", res.Rooms[0].RoomNumber)
		require.Len(t, res.Services, 1)

		require.Equal(t, 1, s.DiscountUsedCount("SUMMER10"))
		require.Equal(t, 1, s.NotificationJobCount())
	})

	s.Run("同じキーの再送は同じ予約を返す", func() {
		t := s.T()
		body := s.newBooking().BuildDTO()
		key := uuid.New()
		first := s.create(body, key, s.customerToken)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, body,
			map[string]string{"Idempotency-Key": key.String()}, s.customerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))

		var replay resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &replay))
		require.Equal(t, first.ID, replay.ID)

		require.Equal(t, 1, s.BookingCount())
	})

	s.Run("同じキーで内容が違うと409", func() {
		t := s.T()
		key := uuid.New()
		s.create(s.newBooking().BuildDTO(), key, s.customerToken)

		changed := s.newBooking().WithRoom(dbtest.Room102ID, 1, 0, 0).BuildDTO()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, changed,
			map[string]string{"Idempotency-Key": key.String()}, s.customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Duplicate booking request")
	})

	s.Run("重なる滞在は409、隣接する滞在は予約できる", func() {
		t := s.T()
		s.create(s.newBooking().BuildDTO(), uuid.New(), s.customerToken)

		in, _ := time.Parse(time.DateOnly, s.checkIn)
		overlap := s.newBooking().WithStay(in.AddDate(0, 0, 1).Format(time.DateOnly), in.AddDate(0, 0, 3).Format(time.DateOnly)).BuildDTO()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, overlap,
			map[string]string{"Idempotency-Key": uuid.NewString()}, s.otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Room is not available")

		adjacent := s.newBooking().WithStay(s.checkOut, in.AddDate(0, 0, 4).Format(time.DateOnly)).BuildDTO()
		s.create(adjacent, uuid.New(), s.otherToken)
	})

	s.Run("同時に同じ部屋を予約すると一件だけ成功する", func() {
		t := s.T()
		tokens := []string{s.customerToken, s.otherToken, s.customerToken, s.otherToken}
		codes := make([]int, len(tokens))

		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, s.newBooking().BuildDTO(),
					map[string]string{"Idempotency-Key": uuid.NewString()}, token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			if code == http.StatusCreated {
				created++
				continue
			}
			require.Equal(t, http.StatusConflict, code)
		}
		require.Equal(t, 1, created)
	})

	s.Run("予約できない条件", func() {
		cases := []struct {
			name   string
			body   request.CreateBookingRequest
			status int
			msg    string
		}{
			{
				name:   "メンテナンス中の部屋",
				body:   s.newBooking().WithRoom(dbtest.Room202ID, 2, 0, 0).BuildDTO(),
				status: http.StatusConflict,
				msg:    "Room is not available",
			},
			{
				name:   "定員超過",
				body:   s.newBooking().WithRoom(dbtest.Room101ID, 3, 0, 0).BuildDTO(),
				status: http.StatusUnprocessableEntity,
				msg:    "Guest count not allowed",
			},
			{
				name:   "過去の日付",
				body:   s.newBooking().WithStay("2020-01-01", "2020-01-03").BuildDTO(),
				status: http.StatusUnprocessableEntity,
				msg:    "Invalid stay dates",
			},
			{
				name:   "存在しない部屋",
				body:   s.newBooking().WithRoom(uuid.New(), 1, 0, 0).BuildDTO(),
				status: http.StatusNotFound,
				msg:    "Room not found",
			},
			{
				name:   "期限切れの割引コード",
				body:   s.newBooking().WithDiscountCode("EXPIRED5").BuildDTO(),
				status: http.StatusUnprocessableEntity,
				msg:    "Discount code cannot be applied",
			},
		}
		for _, tc := range cases {
			w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, bookingsURL, tc.body,
				map[string]string{"Idempotency-Key": uuid.NewString()}, s.customerToken)
			httptest.AssertErrorResponse(s.T(), w, tc.status, tc.msg)
		}
	})

	s.Run("利用回数上限の割引コードは二回目で拒否される", func() {
		t := s.T()
		s.create(s.newBooking().WithDiscountCode("ONCEONLY").BuildDTO(), uuid.New(), s.customerToken)

		second := s.newBooking().WithRoom(dbtest.Room102ID, 2, 0, 0).WithDiscountCode("ONCEONLY").BuildDTO()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, second,
			map[string]string{"Idempotency-Key": uuid.NewString()}, s.otherToken)
		require.Contains(t, []int{http.StatusConflict, http.StatusUnprocessableEntity}, w.Code, w.Body.String())

		require.Equal(t, 1, s.BookingCount())
	})
}

func (s *bookingSuite) TestReadAndCancel() {
	s.Run("本人と他人とスタッフの閲覧", func() {
		t := s.T()
		created := s.create(s.newBooking().BuildDTO(), uuid.New(), s.customerToken)
		url := bookingsURL + "/" + created.ID

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.customerToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.staffToken)
		require.Equal(t, http.StatusOK, w.Code)
	})

	s.Run("一覧はカーソルでページングする", func() {
		t := s.T()
		in, _ := time.Parse(time.DateOnly, s.checkIn)
		for i := range 3 {
			stayIn := in.AddDate(0, 0, i*3)
			body := s.newBooking().WithStay(stayIn.Format(time.DateOnly), stayIn.AddDate(0, 0, 1).Format(time.DateOnly)).BuildDTO()
			s.create(body, uuid.New(), s.customerToken)
		}

		var page struct {
			Bookings   []resdto.BookingListItemResponse `json:"bookings"`
			NextCursor string                           `json:"next_cursor"`
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2", nil, s.customerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Bookings, 2)
		require.NotEmpty(t, page.NextCursor)

		seen := map[string]bool{page.Bookings[0].ID: true, page.Bookings[1].ID: true}
		cursor := page.NextCursor
		page.NextCursor = ""
		page.Bookings = nil

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2&after="+cursor, nil, s.customerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Bookings, 1)
		require.Empty(t, page.NextCursor)
		require.False(t, seen[page.Bookings[0].ID])

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.otherToken)
		var empty map[string]any
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &empty)
		require.Empty(t, empty["bookings"])

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?after=garbage", nil, s.customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("キャンセルで部屋が空く", func() {
		t := s.T()
		created := s.create(s.newBooking().BuildDTO(), uuid.New(), s.customerToken)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/cancel", nil, s.otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/cancel", nil, s.customerToken)
		var cancelled resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)

		// a cancelled stay no longer blocks the room
		s.create(s.newBooking().BuildDTO(), uuid.New(), s.otherToken)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/cancel", nil, s.customerToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestUpdateStatus() {
	s.Run("スタッフによるステータス変更", func() {
		t := s.T()
		created := s.create(s.newBooking().BuildDTO(), uuid.New(), s.customerToken)
		url := bookingsURL + "/" + created.ID + "/status"

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, request.UpdateBookingStatusRequest{Status: "confirmed"}, s.customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url, request.UpdateBookingStatusRequest{Status: "confirmed"}, s.staffToken)
		var confirmed resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.Equal(t, "confirmed", confirmed.Status)

		// checking out before checking in is not a valid move
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url, request.UpdateBookingStatusRequest{Status: "checked_out"}, s.staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Invalid booking status change")

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingsURL+"/"+uuid.NewString()+"/status",
			request.UpdateBookingStatusRequest{Status: "confirmed"}, s.staffToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *bookingSuite) TestCatalogAndQuotes() {
	s.Run("空室検索は予約済みとメンテナンス中の部屋を除く", func() {
		t := s.T()
		s.create(s.newBooking().BuildDTO(), uuid.New(), s.customerToken)

		var res struct {
			Rooms []resdto.AvailableRoomResponse `json:"rooms"`
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			availableURL+"?check_in="+s.checkIn+"&check_out="+s.checkOut, nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)

		numbers := make([]string, len(res.Rooms))
		for i, r := range res.Rooms {
			numbers[i] = r.Number
		}
		require.ElementsMatch(t, []string{"101", "102"}, numbers)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			availableURL+"?check_in="+s.checkIn+"&check_out="+s.checkOut+"&room_type_id="+dbtest.RoomTypeStandardID.String(), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Len(t, res.Rooms, 1)
		require.Equal(t, "101", res.Rooms[0].Number)
	})

	s.Run("ルームタイプとサービスの一覧", func() {
		t := s.T()
		var types struct {
			RoomTypes []resdto.RoomTypeResponse `json:"room_types"`
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/room-types", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &types)
		require.Len(t, types.RoomTypes, 2)

		var services struct {
			Services []resdto.ServiceResponse `json:"services"`
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/services", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &services)
		// the inactive spa is hidden
		require.Len(t, services.Services, 2)
	})

	s.Run("見積もりは割引を消費しない", func() {
		t := s.T()
		body := s.newBooking().WithRoom(dbtest.Room101ID, 2, 0, 0).WithDiscountCode("FLAT200K").BuildQuoteDTO()

		var quote resdto.QuoteResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, body, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &quote)
		require.Equal(t, int64(1_200_000), quote.Subtotal)
		require.Equal(t, int64(200_000), quote.DiscountAmount)
		require.Equal(t, int64(1_000_000), quote.Total)

		require.Zero(t, s.DiscountUsedCount("FLAT200K"))
	})

	s.Run("見積もりで使えない割引コードは理由を返す", func() {
		t := s.T()
		body := s.newBooking().WithRoom(dbtest.Room101ID, 1, 0, 0).WithStay(s.checkIn, s.checkIn).BuildQuoteDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Invalid stay dates")

		in, _ := time.Parse(time.DateOnly, s.checkIn)
		oneNight := s.newBooking().WithRoom(dbtest.Room101ID, 1, 0, 0).
			WithStay(s.checkIn, in.AddDate(0, 0, 1).Format(time.DateOnly)).
			WithDiscountCode("SUMMER10").BuildQuoteDTO()

		var quote resdto.QuoteResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, oneNight, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &quote)
		require.NotNil(t, quote.DiscountError)
		require.Zero(t, quote.DiscountAmount)
		require.Equal(t, quote.Subtotal, quote.Total)
	})
}

func (s *bookingSuite) TestDiscounts() {
	s.Run("割引コードの検証", func() {
		t := s.T()
		var res resdto.DiscountValidationResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL,
			request.ValidateDiscountRequest{Code: "SUMMER10", OrderAmount: 10_000_000}, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		// 10% capped at 500,000
		require.Equal(t, int64(500_000), res.DiscountAmount)
		require.Equal(t, int64(9_500_000), res.FinalAmount)

		for code, status := range map[string]int{
			"EXPIRED5": http.StatusUnprocessableEntity,
			"DISABLED": http.StatusUnprocessableEntity,
			"NOSUCH01": http.StatusNotFound,
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL,
				request.ValidateDiscountRequest{Code: code, OrderAmount: 2_000_000}, "")
			require.Equal(t, status, w.Code, code)
		}
	})

	s.Run("注文金額に応じたヒント", func() {
		t := s.T()
		var res struct {
			Discounts []resdto.DiscountHintResponse `json:"discounts"`
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, hintsURL+"?order_amount=500000", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)

		byCode := map[string]resdto.DiscountHintResponse{}
		for _, h := range res.Discounts {
			byCode[h.Code] = h
		}
		require.NotContains(t, byCode, "EXPIRED5")
		require.NotContains(t, byCode, "DISABLED")
		require.False(t, byCode["SUMMER10"].Eligible)
		require.Equal(t, int64(500_000), byCode["SUMMER10"].Shortfall)
		require.True(t, byCode["FLAT200K"].Eligible)
	})
}
