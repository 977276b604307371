package handler

import "github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username       string `json:"username"        validate:"required,min=2"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required"`
	RepeatPassword string `json:"repeat_password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}
