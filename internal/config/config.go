// SPDX-License-Identifier: EPL-2.0

// Package config loads the synthmix runtime settings from the environment.
package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pion/logging"
)

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Output device
	SampleRate int
	Channels   int
	Backend    string        // oto, beep or null
	Buffer     time.Duration // device buffer length
	Format     string        // float32 or int16

	// Mixer
	MaxVoices int
	QueueSize int // pending sources between the prompt and the audio thread

	// File streaming
	PacketSize int // samples per decoded packet
	Prefetch   int // packets decoded ahead

	LogLevel string
	File     string // played at start when set
}

// Load reads configuration from environment variables with sane defaults.
// Malformed or non-positive numbers fall back to the default.
func Load() Config {
	return Config{
		SampleRate: envInt("SYNTHMIX_SAMPLE_RATE", 48000),
		Channels:   envInt("SYNTHMIX_CHANNELS", 2),
		Backend:    envStr("SYNTHMIX_BACKEND", "oto"),
		Buffer:     envDuration("SYNTHMIX_BUFFER", 50*time.Millisecond),
		Format:     envStr("SYNTHMIX_FORMAT", "float32"),

		MaxVoices: envInt("SYNTHMIX_MAX_VOICES", 256),
		QueueSize: envInt("SYNTHMIX_QUEUE_SIZE", 64),

		PacketSize: envInt("SYNTHMIX_PACKET_SIZE", 4096),
		Prefetch:   envInt("SYNTHMIX_PREFETCH", 4),

		LogLevel: envStr("SYNTHMIX_LOG_LEVEL", "info"),
		File:     envStr("SYNTHMIX_FILE", ""),
	}
}

// Level maps LogLevel to a pion level. Unknown names mean info.
func (c Config) Level() logging.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "disabled", "off", "none":
		return logging.LogLevelDisabled
	case "error":
		return logging.LogLevelError
	case "warn", "warning":
		return logging.LogLevelWarn
	case "debug":
		return logging.LogLevelDebug
	case "trace":
		return logging.LogLevelTrace
	default:
		return logging.LogLevelInfo
	}
}

// LoggerFactory builds the factory every component takes its scoped logger
// from. Output goes to w, stderr when nil.
func (c Config) LoggerFactory(w io.Writer) *logging.DefaultLoggerFactory {
	if w == nil {
		w = os.Stderr
	}

	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = c.Level()
	f.Writer = w
	return f
}
