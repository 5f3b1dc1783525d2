// Package config provides configuration helpers for GAIA commands.
// All configuration comes from the environment; cmd/gaia loads a .env
// file before calling into this package.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names for provider credentials.
const (
	EnvGroqAPIKey       = "GROQ_API_KEY"
	EnvGoogleAPIKey     = "GOOGLE_API_KEY"
	EnvGoogleSearchID   = "GOOGLE_SEARCH_ID"
	EnvElevenLabsAPIKey = "ELEVENLABS_API_KEY"
	EnvSpeechifyAPIKey  = "SPEECHIFY_API_KEY"
	EnvHuggingFaceToken = "HF_API_KEY"
)

// Getenv returns the value of key, falling back to def when unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvInt returns the integer value of key, falling back to def when
// unset or unparsable.
func GetenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetenvBool returns true when key is set to "1", "true" or "yes".
func GetenvBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// APIKey returns the credential stored under the given env var, or ""
// when the provider is not configured. An empty key means the caller
// should skip wiring that provider, not fail.
func APIKey(envVar string) string {
	return os.Getenv(envVar)
}

// Require returns the value of key or exits with a usage message.
// Only used for settings without a sensible default.
func Require(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "Error: %s environment variable is required\n", key)
		os.Exit(1)
	}
	return v
}
