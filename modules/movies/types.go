package movies

import (
	"time"
)

// MovieRecord is the wire shape of a saved movie in service responses.
type MovieRecord struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Country     string    `json:"country"`
	Director    string    `json:"director"`
	Duration    int       `json:"duration"`
	Year        string    `json:"year"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Trailer     string    `json:"trailer"`
	Thumbnail   string    `json:"thumbnail"`
	MovieID     string    `json:"movieId"`
	NameRU      string    `json:"nameRU"`
	NameEN      string    `json:"nameEN"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMovieRequest represents a create-movie service request.
type CreateMovieRequest struct {
	OwnerID     string `json:"owner_id"`
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

// CreateMovieResponse represents a create-movie service response.
type CreateMovieResponse struct {
	Movie MovieRecord `json:"movie"`
}

// ListMoviesRequest represents a list-movies service request.
type ListMoviesRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListMoviesResponse represents a list-movies service response.
type ListMoviesResponse struct {
	Movies []MovieRecord `json:"movies"`
}

// DeleteMovieRequest represents a delete-movie service request.
type DeleteMovieRequest struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
}

// DeleteMovieResponse represents a delete-movie service response.
type DeleteMovieResponse struct {
	Deleted bool `json:"deleted"`
}
