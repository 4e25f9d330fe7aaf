package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP      string // Host IP for the server
	RESTPort    int    // Port for the REST API
	GinMode     string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret   string // Secret key for signing session tokens; random per process when empty
	JWTIssuer   string // Issuer claim for session tokens
	LogFile     string // Optional path of the rotating log file
	GameConfig  string // Optional path of the YAML game tuning file
	MaxSessions int    // Upper bound on live game sessions
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:      getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:    getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:     getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:   getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:   getEnvWithDefault("JWT_ISSUER", "maze3d"),
		LogFile:     getEnvWithDefault("LOG_FILE", ""),
		GameConfig:  getEnvWithDefault("GAME_CONFIG", ""),
		MaxSessions: getEnvAsIntWithDefault("MAX_SESSIONS", 256),
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer,
// returning defaultValue when unset and failing when it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
