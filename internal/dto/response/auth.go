package response

import (
	"time"

	"box-office/internal/data/entity"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	MoneySpent int       `json:"money_spent"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		Role:       string(user.Role),
		MoneySpent: user.MoneySpent,
		CreatedAt:  user.CreatedAt,
	}
}
