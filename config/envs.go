package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	MaxMazeDimension int    // Largest accepted maze width or height, in rooms
	MaxRuns          int    // Maximum number of concurrent explorer runs
	MaxTicks         int    // Upper bound on updates for a single solve request
	TickIntervalMS   int    // Delay between updates when a run is played in the background
	RunTTLSeconds    int    // Idle time after which a run is swept
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
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		MaxMazeDimension: getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 20),
		MaxRuns:          getEnvAsIntWithDefault("MAX_RUNS", 64),
		MaxTicks:         getEnvAsIntWithDefault("MAX_TICKS", 10000),
		TickIntervalMS:   getEnvAsIntWithDefault("TICK_INTERVAL_MS", 50),
		RunTTLSeconds:    getEnvAsIntWithDefault("RUN_TTL_SECONDS", 600),
	}
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
// A value that is set but cannot be parsed is fatal.
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
