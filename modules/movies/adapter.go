package movies

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MoviesPort defines the interface other modules use for saved movies.
type MoviesPort interface {
	Create(ctx context.Context, ownerID string, in CreateMovieInput) (*MovieRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]MovieRecord, error)
	Delete(ctx context.Context, id, requesterID string) error
}

// MoviesAdapter implements MoviesPort using the service container.
type MoviesAdapter struct {
	container mono.ServiceContainer
}

// NewMoviesAdapter creates a new MoviesAdapter.
func NewMoviesAdapter(container mono.ServiceContainer) *MoviesAdapter {
	return &MoviesAdapter{
		container: container,
	}
}

// Create saves a movie for the given owner.
func (a *MoviesAdapter) Create(ctx context.Context, ownerID string, in CreateMovieInput) (*MovieRecord, error) {
	req := CreateMovieRequest{
		OwnerID:     ownerID,
		Country:     in.Country,
		Director:    in.Director,
		Duration:    in.Duration,
		Year:        in.Year,
		Description: in.Description,
		Image:       in.Image,
		Trailer:     in.Trailer,
		Thumbnail:   in.Thumbnail,
		MovieID:     in.MovieID,
		NameRU:      in.NameRU,
		NameEN:      in.NameEN,
	}
	var resp CreateMovieResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-movie",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}

	movie := resp.Movie
	return &movie, nil
}

// ListByOwner returns the owner's saved movies.
func (a *MoviesAdapter) ListByOwner(ctx context.Context, ownerID string) ([]MovieRecord, error) {
	req := ListMoviesRequest{OwnerID: ownerID}
	var resp ListMoviesResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-movies",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}

	return resp.Movies, nil
}

// Delete removes a movie on behalf of requesterID.
func (a *MoviesAdapter) Delete(ctx context.Context, id, requesterID string) error {
	req := DeleteMovieRequest{ID: id, RequesterID: requesterID}
	var resp DeleteMovieResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-movie",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(err)
	}

	return nil
}

// mapServiceError translates errors that crossed the JSON request-reply
// boundary back onto the package sentinels.
func mapServiceError(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrMovieNotFound,
		ErrInvalidMovie,
	} {
		if strings.Contains(msg, sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
