package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	arena "github.com/pavanmanishd/fixedarena"
)

// envPrefix is the prefix of environment overrides, e.g. ARENADEMO_CAPACITY.
const envPrefix = "ARENADEMO"

// Config holds arenademo configuration.
type Config struct {
	Capacity  int    `mapstructure:"capacity"`
	Backing   string `mapstructure:"backing"` // heap, mmap, libc
	Tracking  bool   `mapstructure:"tracking"`
	Alignment int    `mapstructure:"alignment"`

	LogLevel  string `mapstructure:"log-level"`  // DEBUG, INFO, WARN, ERROR
	LogFormat string `mapstructure:"log-format"` // json, text

	Workers  int `mapstructure:"workers"`
	Requests int `mapstructure:"requests"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:  1024,
		Backing:   "heap",
		Alignment: arena.DefaultAlignment,
		LogLevel:  "INFO",
		LogFormat: "text",
		Workers:   4,
		Requests:  64,
	}
}

func registerFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Int("capacity", d.Capacity, "arena capacity in bytes")
	fs.String("backing", d.Backing, "backing allocator: heap, mmap or libc")
	fs.Bool("tracking", d.Tracking, "record every allocation")
	fs.Int("alignment", d.Alignment, "default alignment for plain allocations (0 = none)")
	fs.String("log-level", d.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.String("log-format", d.LogFormat, "text or json")
	fs.Int("workers", d.Workers, "worker goroutines for serve-sim")
	fs.Int("requests", d.Requests, "simulated requests for serve-sim")
}

// LoadConfig merges defaults, ARENADEMO_* environment variables and flags,
// in increasing order of precedence.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Capacity <= 0 {
		return Config{}, fmt.Errorf("capacity must be positive, got %d", cfg.Capacity)
	}
	if cfg.Alignment < 0 {
		return Config{}, fmt.Errorf("alignment must not be negative, got %d", cfg.Alignment)
	}
	return cfg, nil
}

// Options translates the config into arena options. The returned cleanup
// must be called once every arena built with them has been released.
func (c Config) Options(logger *slog.Logger) ([]arena.Option, func(), error) {
	opts := []arena.Option{
		arena.WithDefaultAlignment(c.Alignment),
		arena.WithLogger(logger),
	}
	if c.Tracking {
		opts = append(opts, arena.WithTracking())
	}

	cleanup := func() {}
	switch strings.ToLower(c.Backing) {
	case "", "heap":
	case "mmap":
		opts = append(opts, arena.WithBacking(arena.NewMmapAllocator()))
	case "libc":
		l := arena.NewLibcAllocator()
		opts = append(opts, arena.WithBacking(l))
		cleanup = func() {
			if err := l.Close(); err != nil {
				logger.Error("close libc allocator", "error", err)
			}
		}
	default:
		return nil, nil, fmt.Errorf("unknown backing allocator %q", c.Backing)
	}
	return opts, cleanup, nil
}

// NewLogger builds the slog logger described by level and format.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
