package test

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
)

func TestMain(m *testing.M) {
	// Initialize loggers for testing
	logger.InitLoggers()
	defer logger.SyncLoggers()

	// Set GO_ENV to "test" so config loading stays quiet
	os.Setenv("GO_ENV", "test")

	// Spin up throwaway Postgres and Redis containers for the suite
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct docker pool: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to docker: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	pgResource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=taskboard",
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=taskboard_test",
	})
	if err != nil {
		log.Fatalf("Could not start postgres container: %v", err)
	}

	redisResource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		log.Fatalf("Could not start redis container: %v", err)
	}

	cleanup := func() {
		if err := pool.Purge(pgResource); err != nil {
			log.Printf("Could not purge postgres container: %v", err)
		}
		if err := pool.Purge(redisResource); err != nil {
			log.Printf("Could not purge redis container: %v", err)
		}
	}

	if err := pool.Retry(func() error {
		var err error
		config.DB, err = sql.Open("postgres", fmt.Sprintf(
			"host=localhost port=%s user=taskboard password=secret dbname=taskboard_test sslmode=disable",
			pgResource.GetPort("5432/tcp")))
		if err != nil {
			return err
		}
		return config.DB.Ping()
	}); err != nil {
		cleanup()
		log.Fatalf("Could not connect to postgres container: %v", err)
	}

	if err := pool.Retry(func() error {
		config.RedisClient = redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("localhost:%s", redisResource.GetPort("6379/tcp")),
		})
		return config.RedisClient.Ping(config.Ctx).Err()
	}); err != nil {
		cleanup()
		log.Fatalf("Could not connect to redis container: %v", err)
	}

	// Create tables and seed the reference users
	repository.CreateTableIfNotExists(config.DB)
	repository.SeedUsers(config.DB)

	// Run all tests
	code := m.Run()

	// Clean up: drop all tables and stop the containers
	repository.DeleteAllTable(config.DB)
	config.DB.Close()
	config.RedisClient.Close()
	cleanup()

	os.Exit(code)
}

// CreateTestApp initializes a Fiber app with the routes under test
func CreateTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())

	taskRoutes := app.Group("/api/v1/tasks")
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/", handlers.CreateTask)
	taskRoutes.Get("/export", handlers.ExportTasks)
	taskRoutes.Get("/users", handlers.ListUsers)
	taskRoutes.Put("/:id", handlers.UpdateTask)
	taskRoutes.Delete("/:id", handlers.DeleteTask)

	return app
}
