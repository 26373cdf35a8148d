// Package config handles server configuration
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel      string
	FontDirs      []string // preloaded at startup, font name = file stem
	MaxSearchArea int      // w*h limit for the find tools
	DebugScores   bool     // record candidate scores for font_debug_scores
}

func Load() *Config {
	return &Config{
		LogLevel:      getEnv("PIXELFONT_MCP_LOG_LEVEL", "info"),
		FontDirs:      getEnvList("PIXELFONT_MCP_FONT_DIRS", nil),
		MaxSearchArea: getEnvInt("PIXELFONT_MCP_MAX_SEARCH_AREA", 4096),
		DebugScores:   getEnvBool("PIXELFONT_MCP_DEBUG_SCORES", false),
	}
}

// SlogLevel maps LogLevel to a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
