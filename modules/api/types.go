package api

import (
	"time"
)

// SignupRequest represents a signup request body.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse echoes the registered email.
type SignupResponse struct {
	Mail string `json:"mail"`
}

// SigninRequest represents a signin request body.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse carries the issued bearer token.
type SigninResponse struct {
	JWT string `json:"jwt"`
}

// UserResponse is the public shape of a user. The password hash is never
// part of any response.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest represents a profile update body.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateMovieRequest represents a create-movie request body.
type CreateMovieRequest struct {
	Country     string `json:"country"`
	Director    string `json:"director"`
	Duration    int    `json:"duration"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Trailer     string `json:"trailer"`
	Thumbnail   string `json:"thumbnail"`
	MovieID     string `json:"movieId"`
	NameRU      string `json:"nameRU"`
	NameEN      string `json:"nameEN"`
}

// DataResponse wraps a payload under a data key.
type DataResponse struct {
	Data any `json:"data"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string `json:"message"`
}
