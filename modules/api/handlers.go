package api

import (
	"net/url"

	domain "github.com/example/movies-explorer-api/domain/user"
	"github.com/example/movies-explorer-api/modules/auth"
	"github.com/example/movies-explorer-api/modules/movies"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth   auth.AuthPort
	movies movies.MoviesPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, moviesPort movies.MoviesPort) *Handlers {
	return &Handlers{
		auth:   authPort,
		movies: moviesPort,
	}
}

// Signup handles user registration. Responds with the registered email only.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email and password are required",
		})
	}

	user, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(SignupResponse{
		Mail: user.Email,
	})
}

// Signin handles login. Unknown email and wrong password are answered
// identically.
func (h *Handlers) Signin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email and password are required",
		})
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(SigninResponse{
		JWT: token,
	})
}

// GetMe returns the authenticated user's record.
func (h *Handlers) GetMe(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authorization required",
		})
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(DataResponse{
		Data: UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// UpdateMe changes the authenticated user's name and email.
func (h *Handlers) UpdateMe(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authorization required",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email is required",
		})
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), claims.UserID, req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// CreateMovie saves a movie for the authenticated user.
func (h *Handlers) CreateMovie(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authorization required",
		})
	}

	var req CreateMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if !isHTTPURL(req.Image) || !isHTTPURL(req.Trailer) || !isHTTPURL(req.Thumbnail) {
		return respondError(c, movies.ErrInvalidMovie)
	}

	movie, err := h.movies.Create(c.UserContext(), claims.UserID, movies.CreateMovieInput{
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
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(DataResponse{
		Data: movie,
	})
}

// ListMovies returns the movies saved by the authenticated user.
func (h *Handlers) ListMovies(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authorization required",
		})
	}

	list, err := h.movies.ListByOwner(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		// An empty collection is a bare [] on the wire, never null
		list = []movies.MovieRecord{}
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

// DeleteMovie removes one of the authenticated user's movies. The id shape
// is validated before any lookup; ownership failures look identical to a
// missing record.
func (h *Handlers) DeleteMovie(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Authorization required",
		})
	}

	id := c.Params("movieId")
	if !movies.IsValidID(id) {
		return respondError(c, errInvalidMovieID)
	}

	if err := h.movies.Delete(c.UserContext(), id, claims.UserID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Movie deleted",
	})
}

// isHTTPURL reports whether s is an absolute http(s) URL.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
