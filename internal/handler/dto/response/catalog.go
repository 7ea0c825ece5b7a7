package response

import "hotel-booking/internal/usecase/queries"

type RoomTypeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NightlyPrice int64   `json:"nightly_price"`
	Capacity     int     `json:"capacity"`
	MaxAdults    int     `json:"max_adults"`
	MaxChildren  int     `json:"max_children"`
	ImageURL     *string `json:"image_url,omitempty"`
	RoomCount    int     `json:"room_count"`
}

func FromRoomTypeView(v *queries.RoomTypeView) *RoomTypeResponse {
	return &RoomTypeResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		Description:  v.Description,
		NightlyPrice: v.NightlyPrice,
		Capacity:     v.Capacity,
		MaxAdults:    v.MaxAdults,
		MaxChildren:  v.MaxChildren,
		ImageURL:     v.ImageURL,
		RoomCount:    v.RoomCount,
	}
}

func FromRoomTypeList(views []*queries.RoomTypeView) []*RoomTypeResponse {
	res := make([]*RoomTypeResponse, len(views))
	for i, v := range views {
		res[i] = FromRoomTypeView(v)
	}
	return res
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
}

func FromServiceList(views []*queries.ServiceView) []*ServiceResponse {
	res := make([]*ServiceResponse, len(views))
	for i, v := range views {
		res[i] = &ServiceResponse{
			ID:          v.ID.String(),
			Name:        v.Name,
			Description: v.Description,
			UnitPrice:   v.UnitPrice,
		}
	}
	return res
}

type AvailableRoomResponse struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	FloorLevel   int    `json:"floor_level"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	NightlyPrice int64  `json:"nightly_price"`
	Capacity     int    `json:"capacity"`
	MaxAdults    int    `json:"max_adults"`
	MaxChildren  int    `json:"max_children"`
}

func FromAvailableRooms(views []*queries.AvailableRoomView) []*AvailableRoomResponse {
	res := make([]*AvailableRoomResponse, len(views))
	for i, v := range views {
		res[i] = &AvailableRoomResponse{
			ID:           v.ID.String(),
			Number:       v.Number,
			FloorLevel:   v.FloorLevel,
			RoomTypeID:   v.RoomTypeID.String(),
			RoomTypeName: v.RoomTypeName,
			NightlyPrice: v.NightlyPrice,
			Capacity:     v.Capacity,
			MaxAdults:    v.MaxAdults,
			MaxChildren:  v.MaxChildren,
		}
	}
	return res
}
