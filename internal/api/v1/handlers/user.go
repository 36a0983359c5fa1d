package handlers

import (
	"encoding/json"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/models"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// User handlers

const usersCacheKey = "users:all"

// ListUsers returns every user, unpaginated. Users are small read-only
// reference data, so the whole list is cached in Redis; cache failures fall
// back to the database.
func ListUsers(c *fiber.Ctx) error {
	if cached, err := config.RedisClient.Get(config.Ctx, usersCacheKey).Result(); err == nil {
		var users []models.User
		if err = json.Unmarshal([]byte(cached), &users); err == nil {
			logger.AuditLogger.Info("Users fetched (from cache)")
			return c.JSON(users)
		}
	}

	rows, err := config.DB.Query("SELECT id, last_name, first_name FROM users ORDER BY id")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching users",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.LastName, &user.FirstName); err != nil {
			logger.ErrorLogger.Error("Error scanning users", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning users",
				"success": false,
				"status":  500,
			})
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over users",
			"success": false,
			"status":  500,
		})
	}

	// Refresh the cache for one hour; an unreachable cache is not an error
	if usersJSON, err := json.Marshal(users); err == nil {
		if err := config.RedisClient.SetEX(config.Ctx, usersCacheKey, usersJSON, time.Hour).Err(); err != nil {
			logger.ErrorLogger.Error("Error caching users", zap.Error(err))
		}
	}

	logger.AuditLogger.Info("Users fetched successfully", zap.Int("count", len(users)))
	return c.JSON(users)
}
