package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/movies-explorer-api/domain/movie"
	"github.com/example/movies-explorer-api/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MoviesModule provides saved-movie services.
type MoviesModule struct {
	db          *gorm.DB
	service     *MovieService
	dbPath      string
	cacheModule *cache.Module
}

// Compile-time interface checks.
var _ mono.Module = (*MoviesModule)(nil)
var _ mono.ServiceProviderModule = (*MoviesModule)(nil)
var _ mono.HealthCheckableModule = (*MoviesModule)(nil)

// NewModule creates a new MoviesModule.
func NewModule(dbPath string) *MoviesModule {
	return &MoviesModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *MoviesModule) Name() string {
	return "movies"
}

// SetCacheModule attaches the optional cache module. Must be called before
// Start; the cache module has to be registered ahead of this one so its
// client exists when the service wires up.
func (m *MoviesModule) SetCacheModule(cm *cache.Module) {
	m.cacheModule = cm
}

// Start initializes the movies module.
func (m *MoviesModule) Start(_ context.Context) error {
	db, err := openDatabase(m.dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Movie{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewMovieRepository(db)
	m.service = NewMovieService(repo)

	if m.cacheModule != nil {
		m.service.SetCache(m.cacheModule.GetCache())
		log.Println("[movies] List caching enabled")
	}

	log.Printf("[movies] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *MoviesModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[movies] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MoviesModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"caching":  m.cacheModule != nil,
		},
	}
}

// openDatabase opens the sqlite file. The auth module writes to the same
// file, so the pool is capped to one connection and writers wait out lock
// contention instead of surfacing SQLITE_BUSY.
func openDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// RegisterServices registers request-reply services in the service container.
func (m *MoviesModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"create-movie",
		json.Unmarshal,
		json.Marshal,
		m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-movie service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list-movies",
		json.Unmarshal,
		json.Marshal,
		m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-movies service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"delete-movie",
		json.Unmarshal,
		json.Marshal,
		m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-movie service: %w", err)
	}

	log.Printf("[movies] Registered services: create-movie, list-movies, delete-movie")
	return nil
}

// handleCreate handles movie creation.
func (m *MoviesModule) handleCreate(ctx context.Context, req CreateMovieRequest, _ *mono.Msg) (CreateMovieResponse, error) {
	movie, err := m.service.Create(ctx, req.OwnerID, CreateMovieInput{
		Country:     req.Country,
		Director:    req.Director,
		Duration:    req.Duration,
		Year:        req.Year,
		Description: req.Description,
		Image:       req.Image,
		Trailer:     req.Trailer,
		Thumbnail:   req.Thumbnail,
		MovieID:     req.MovieID,
		NameRU:      req.NameRU,
		NameEN:      req.NameEN,
	})
	if err != nil {
		return CreateMovieResponse{}, err
	}

	return CreateMovieResponse{Movie: toRecord(movie)}, nil
}

// handleList handles listing the caller's movies.
func (m *MoviesModule) handleList(ctx context.Context, req ListMoviesRequest, _ *mono.Msg) (ListMoviesResponse, error) {
	list, err := m.service.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return ListMoviesResponse{}, err
	}

	records := make([]MovieRecord, 0, len(list))
	for i := range list {
		records = append(records, toRecord(&list[i]))
	}
	return ListMoviesResponse{Movies: records}, nil
}

// handleDelete handles movie deletion with the ownership guard.
func (m *MoviesModule) handleDelete(ctx context.Context, req DeleteMovieRequest, _ *mono.Msg) (DeleteMovieResponse, error) {
	if err := m.service.Delete(ctx, req.ID, req.RequesterID); err != nil {
		return DeleteMovieResponse{}, err
	}
	return DeleteMovieResponse{Deleted: true}, nil
}

func toRecord(m *domain.Movie) MovieRecord {
	return MovieRecord{
		ID:          m.ID,
		Owner:       m.OwnerID,
		Country:     m.Country,
		Director:    m.Director,
		Duration:    m.Duration,
		Year:        m.Year,
		Description: m.Description,
		Image:       m.Image,
		Trailer:     m.Trailer,
		Thumbnail:   m.Thumbnail,
		MovieID:     m.MovieID,
		NameRU:      m.NameRU,
		NameEN:      m.NameEN,
		CreatedAt:   m.CreatedAt,
	}
}
