package response

import (
	"time"

	"box-office/internal/data/entity"
)

type HallResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:        hall.ID.String(),
		Name:      hall.Name,
		Capacity:  hall.Capacity,
		CreatedAt: hall.CreatedAt,
	}
}
