package movies

import (
	"context"
	"errors"
	"log"
	"time"

	domain "github.com/example/movies-explorer-api/domain/movie"
	"github.com/example/movies-explorer-api/modules/cache"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidMovie is returned when a movie payload fails validation.
var ErrInvalidMovie = errors.New("movie data failed validation")

// CreateMovieInput carries the fields of a movie to save.
type CreateMovieInput struct {
	Country     string
	Director    string
	Duration    int
	Year        string
	Description string
	Image       string
	Trailer     string
	Thumbnail   string
	MovieID     string
	NameRU      string
	NameEN      string
}

// MovieService implements saved-movie operations with the ownership guard.
// The list cache is optional; a nil cache disables it.
type MovieService struct {
	repo    *MovieRepository
	cache   cache.CacheService
	sfGroup singleflight.Group // Prevents cache stampede on list misses
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo *MovieRepository) *MovieService {
	return &MovieService{
		repo: repo,
	}
}

// SetCache attaches a cache for per-owner list reads.
func (s *MovieService) SetCache(c cache.CacheService) {
	s.cache = c
}

func cacheKeyList(ownerID string) string {
	return "list:" + ownerID
}

// Create saves a new movie bound to ownerID.
func (s *MovieService) Create(ctx context.Context, ownerID string, in CreateMovieInput) (*domain.Movie, error) {
	if in.Country == "" || in.Director == "" || in.Duration < 0 || in.Year == "" ||
		in.Description == "" || in.Image == "" || in.Trailer == "" || in.Thumbnail == "" ||
		in.MovieID == "" || in.NameRU == "" || in.NameEN == "" {
		return nil, ErrInvalidMovie
	}

	now := time.Now()
	m := &domain.Movie{
		ID:          NewID(),
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
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateList(ctx, ownerID)
	return m, nil
}

// ListByOwner returns the caller's saved movies, newest last.
func (s *MovieService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Movie, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, ownerID)
	}

	key := cacheKeyList(ownerID)

	var cached []domain.Movie
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[movies] cache error for owner=%s: %v", ownerID, err)
		// Continue to database on cache error
	}
	if found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.ListByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	list := val.([]domain.Movie)

	if err := s.cache.Set(ctx, key, list); err != nil {
		log.Printf("[movies] failed to cache list for owner=%s: %v", ownerID, err)
	}

	return list, nil
}

// Delete removes a movie after the ownership check. A record that does not
// exist and a record owned by someone else produce the same error.
func (s *MovieService) Delete(ctx context.Context, id, requesterID string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := checkOwnership(m, requesterID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx, m.OwnerID)
	return nil
}

// checkOwnership denies when the resource is absent or owned by another
// identity, collapsing both into the not-found error.
func checkOwnership(m *domain.Movie, requesterID string) error {
	if m == nil || m.OwnerID != requesterID {
		return ErrMovieNotFound
	}
	return nil
}

func (s *MovieService) invalidateList(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyList(ownerID)); err != nil {
		log.Printf("[movies] failed to invalidate list cache for owner=%s: %v", ownerID, err)
	}
}
