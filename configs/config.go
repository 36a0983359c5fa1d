package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost       string
	DBPort       int
	DBUser       string
	DBPassword   string
	DBName       string
	RedisHost    string
	RedisPort    int
	AppPort      int
	ClientOrigin string
}

func LoadConfig() Config {
	// Load the .env file
	if err := godotenv.Load(); err != nil {
		// Only log when not running in test mode
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	appPort, err := strconv.Atoi(os.Getenv("APP_PORT"))
	if err != nil {
		appPort = 3004
	}

	clientOrigin := os.Getenv("CLIENT_ORIGIN")
	if clientOrigin == "" {
		// Frontend dev server
		clientOrigin = "http://localhost:3000"
	}

	return Config{
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       dbPort,
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		RedisHost:    os.Getenv("REDIS_HOST"),
		RedisPort:    redisPort,
		AppPort:      appPort,
		ClientOrigin: clientOrigin,
	}
}
