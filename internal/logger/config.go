package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig configures the logging system. Every field can be overridden through the
// LOG_* environment variables.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error, fatal
	Format string // json, text
	Output string // file, stdout, both

	// rotation
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool

	LogPath   string
	AppFile   string
	AuditFile string
	ErrorFile string

	// FilterModules keeps only entries whose "module" field is listed (comma separated).
	// Empty or "*" keeps everything.
	FilterModules string
}

// DefaultConfig returns the configuration for the current GO_ENV with env overrides applied.
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	cfg := &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "both",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
		LogPath:    "./logs",
		AppFile:    "app.log",
		AuditFile:  "audit.log",
		ErrorFile:  "error.log",
	}
	if goEnv == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	}

	overrideString := func(key string, dst *string, lower bool) {
		if v := os.Getenv(key); v != "" {
			if lower {
				v = strings.ToLower(v)
			}
			*dst = v
		}
	}
	overrideInt := func(key string, dst *int, min int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= min {
				*dst = n
			}
		}
	}

	overrideString("LOG_LEVEL", &cfg.Level, true)
	overrideString("LOG_FORMAT", &cfg.Format, true)
	overrideString("LOG_OUTPUT", &cfg.Output, true)
	overrideInt("LOG_MAX_SIZE", &cfg.MaxSize, 1)
	overrideInt("LOG_MAX_BACKUPS", &cfg.MaxBackups, 0)
	overrideInt("LOG_MAX_AGE", &cfg.MaxAge, 1)
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Compress = b
		}
	}
	overrideString("LOG_PATH", &cfg.LogPath, false)
	overrideString("LOG_APP_FILE", &cfg.AppFile, false)
	overrideString("LOG_AUDIT_FILE", &cfg.AuditFile, false)
	overrideString("LOG_ERROR_FILE", &cfg.ErrorFile, false)
	overrideString("LOG_FILTER_MODULES", &cfg.FilterModules, true)

	return cfg
}
