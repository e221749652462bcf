package cli

import (
	"os"
	"strconv"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds the CLI-level settings shared by the commands. Flags
// override environment variables (CONQUERGATE_*), which override the
// defaults.
type Config struct {
	AuthPort   int
	GamePort   int
	PublicAddr string
	ServerName string
	StatusPort int

	StorageType string
	RedisURL    string
}

// DefaultCLIConfig returns configuration seeded from the environment
func DefaultCLIConfig() *Config {
	return &Config{
		AuthPort:    envInt("CONQUERGATE_AUTH_PORT", 9958),
		GamePort:    envInt("CONQUERGATE_GAME_PORT", 5816),
		PublicAddr:  envString("CONQUERGATE_PUBLIC_ADDR", "127.000.000.001"),
		ServerName:  envString("CONQUERGATE_SERVER_NAME", "CentralPlain"),
		StatusPort:  envInt("CONQUERGATE_STATUS_PORT", 0),
		StorageType: envString("CONQUERGATE_STORAGE", StorageTypeMemory),
		RedisURL:    envString("CONQUERGATE_REDIS_URL", "redis://localhost:6379"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
