package auth

import "merchant-registry/internal/model"

// LoginRequest carries the credentials posted to /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates an operator account with one of the two roles.
type RegisterRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     model.Role `json:"role" validate:"required,oneof=ADMINISTRATOR REGISTRATION_ASSISTANT"`
}
