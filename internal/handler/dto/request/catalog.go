package request

import "github.com/google/uuid"

type AvailableRoomsQuery struct {
	CheckIn    string `form:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string `form:"check_out" binding:"required,datetime=2006-01-02"`
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
}

func (q AvailableRoomsQuery) GetRoomTypeID() *uuid.UUID {
	if q.RoomTypeID == "" {
		return nil
	}
	id, err := uuid.Parse(q.RoomTypeID)
	if err != nil {
		return nil
	}
	return &id
}
