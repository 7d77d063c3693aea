package api

import (
	"errors"
	"log"

	"github.com/example/movies-explorer-api/modules/auth"
	"github.com/example/movies-explorer-api/modules/movies"
	"github.com/gofiber/fiber/v2"
)

// errInvalidMovieID rejects malformed record ids before any lookup happens.
var errInvalidMovieID = errors.New("invalid movie id")

// respondError is the single terminal error responder. Every handler funnels
// its errors here; the sentinel determines the status code, and anything
// unrecognized is logged server-side and surfaced as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrInvalidName),
		errors.Is(err, auth.ErrPasswordRequired),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, movies.ErrInvalidMovie),
		errors.Is(err, errInvalidMovieID):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
		})

	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Invalid email or password",
		})

	case errors.Is(err, auth.ErrEmailTaken):
		// Deliberately vague: do not confirm which constraint was hit
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: "Account already registered",
		})

	case errors.Is(err, auth.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "User not found",
		})

	case errors.Is(err, movies.ErrMovieNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Movie not found",
		})

	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}
}
