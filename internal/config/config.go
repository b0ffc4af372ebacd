// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line defaults from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the playback settings, loaded from AUDIOCUE_* variables.
type Config struct {
	// Initial chain settings
	Volume     float64
	Speed      float64
	PanLR      float64
	PanFB      float64
	SingleAxis bool
	Duration   time.Duration // 0 plays the whole file

	// Output
	Output     string        // WAV path; empty plays on the audio device
	SampleRate int           // device rate, 0 = source rate
	Channels   int           // device channels, 0 = source channels
	Buffer     time.Duration // device buffer, 0 = oto default

	LogLevel string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Volume:     envFloat("AUDIOCUE_VOLUME", 1.0),
		Speed:      envFloat("AUDIOCUE_SPEED", 1.0),
		PanLR:      envFloat("AUDIOCUE_PAN", 0),
		PanFB:      envFloat("AUDIOCUE_PAN_FB", 0),
		SingleAxis: envBool("AUDIOCUE_SINGLE_AXIS", false),
		Duration:   envDuration("AUDIOCUE_DURATION", 0),

		Output:     envStr("AUDIOCUE_OUTPUT", ""),
		SampleRate: envInt("AUDIOCUE_RATE", 0),
		Channels:   envInt("AUDIOCUE_CHANNELS", 0),
		Buffer:     envDuration("AUDIOCUE_BUFFER", 0),

		LogLevel: envStr("AUDIOCUE_LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
