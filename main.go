// Movies Explorer API - an authenticated REST backend for saving movies.
//
// Users sign up and log in with email and password, receive a 7-day bearer
// token, and manage a private collection of saved movies. Built as a mono
// modular monolith: auth, movies, optional Redis cache and rate limiting,
// and a Fiber HTTP surface.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/movies-explorer-api/modules/api"
	"github.com/example/movies-explorer-api/modules/auth"
	"github.com/example/movies-explorer-api/modules/cache"
	"github.com/example/movies-explorer-api/modules/movies"
	"github.com/example/movies-explorer-api/modules/ratelimit"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Configuration is read once here and handed to the modules that need it
	port := getEnvInt("PORT", 3000)
	dbPath := getEnv("DB_PATH", "movies.db")
	redisAddr := os.Getenv("REDIS_ADDR")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	authModule := auth.NewModule(dbPath)
	moviesModule := movies.NewModule(dbPath)
	apiModule := api.NewModule(port)

	// Cache and rate limiting need Redis; without REDIS_ADDR the service
	// runs with both disabled.
	if redisAddr != "" {
		cacheModule := cache.NewModule(redisAddr, "movies:", 5*time.Minute)
		rateLimitModule := ratelimit.NewModule(redisAddr, ratelimit.DefaultConfig())

		moviesModule.SetCacheModule(cacheModule)
		apiModule.SetRateLimitModule(rateLimitModule)

		app.Register(cacheModule)
		app.Register(rateLimitModule)
	}

	// Order matters: providers first, then the api module that depends on them
	app.Register(authModule)
	app.Register(moviesModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(port, redisAddr != "")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int, redisEnabled bool) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /signup            - Register a new user")
	log.Println("  POST   /signin            - Login and get a token")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /users/me          - Get current user")
	log.Println("  PATCH  /users/me          - Update name and email")
	log.Println("  POST   /movies            - Save a movie")
	log.Println("  GET    /movies            - List saved movies")
	log.Println("  DELETE /movies/:movieId   - Delete a saved movie")
	log.Println("")
	if redisEnabled {
		log.Println("Redis: list caching and login rate limiting enabled")
	} else {
		log.Println("Redis: disabled (set REDIS_ADDR to enable caching and rate limiting)")
	}
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a
// default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
		log.Printf("Warning: invalid integer value for %s: %q, using default %d", key, value, defaultValue)
	}
	return defaultValue
}
