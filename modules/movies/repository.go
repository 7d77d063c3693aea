package movies

import (
	"context"
	"errors"

	domain "github.com/example/movies-explorer-api/domain/movie"
	"gorm.io/gorm"
)

// ErrMovieNotFound covers both a missing record and a record owned by
// someone else, so non-owners cannot probe for existence.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository handles movie persistence using GORM.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{
		db: db,
	}
}

// Create creates a new movie record.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) error {
	result := r.db.WithContext(ctx).Create(m)
	return result.Error
}

// FindByID finds a movie by record id.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	var m domain.Movie
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

// ListByOwner returns all movies saved by the given owner.
func (r *MovieRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Movie, error) {
	var list []domain.Movie
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}
	return list, nil
}

// Delete removes a movie record by id.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Movie{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
