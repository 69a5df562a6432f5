package dto

import (
	"lexihub/internal/models"
	"time"
)

// LoginRequest used for POST /api/v1/auth/login
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginResponse acknowledges code dispatch. DevCode is only populated in
// development mode.
type LoginResponse struct {
	Message string  `json:"message"`
	DevCode *string `json:"dev_code,omitempty"`
}

// VerifyRequest used for POST /api/v1/auth/verify
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// TokenResponse carries the signed bearer credential.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse DTO for user profiles
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsActivated bool      `json:"is_activated"`
	Userdata    any       `json:"userdata,omitempty"`
	Username    *string   `json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromUserModel(u models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		IsActivated: u.IsActivated,
		Username:    u.Username,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if len(u.Userdata) > 0 {
		resp.Userdata = u.Userdata
	}
	return resp
}
