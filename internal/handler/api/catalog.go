package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	queries queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{queries: q}
}

// @Summary List room types
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.RoomTypeResponse
// @Router /api/room-types [get]
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	views, err := h.queries.ListRoomTypes(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "list room types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_types": resdto.FromRoomTypeList(views)})
}

// @Summary Get room type
// @Tags catalog
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} resdto.RoomTypeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/room-types/{id} [get]
func (h *CatalogHandler) GetRoomType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room type id", nil)
		return
	}
	view, err := h.queries.GetRoomType(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err, "get room type")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomTypeView(view))
}

// @Summary List services
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ServiceResponse
// @Router /api/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	views, err := h.queries.ListServices(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "list services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": resdto.FromServiceList(views)})
}

// @Summary Search available rooms
// @Description Rooms with no active booking overlapping the stay
// @Tags catalog
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param room_type_id query string false "Filter by room type"
// @Success 200 {array} resdto.AvailableRoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/available [get]
func (h *CatalogHandler) ListAvailableRooms(c *gin.Context) {
	var q reqdto.AvailableRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindingError(c, err)
		return
	}
	views, err := h.queries.ListAvailableRooms(c.Request.Context(), q.CheckIn, q.CheckOut, q.GetRoomTypeID())
	if err != nil {
		abortWithUsecaseError(c, err, "list available rooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": resdto.FromAvailableRooms(views)})
}
