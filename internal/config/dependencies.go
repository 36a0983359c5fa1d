package config

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Global dependencies used across the application
	DB          *sql.DB
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
)
