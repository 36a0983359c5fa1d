package v1

import (
	"taskboard/internal/api/v1/handlers"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Task
	taskRoutes := api.Group("/tasks")
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/", handlers.CreateTask)
	// Literal routes before the :id routes
	taskRoutes.Get("/export", handlers.ExportTasks)
	taskRoutes.Get("/users", handlers.ListUsers)
	taskRoutes.Put("/:id", handlers.UpdateTask)
	taskRoutes.Delete("/:id", handlers.DeleteTask)
}
