package config

import (
	"os"
	"strconv"

	"github.com/pwllr/airwave/internal/log"
)

// envString reads a string override, treating an empty variable as unset.
func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		l := log.WithComponent("config")
		l.Debug().
			Str("key", key).
			Str("source", "environment").
			Msg("using environment override")
		return v
	}
	return fallback
}

// envInt reads an integer override, falling back on parse errors.
func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		l := log.WithComponent("config")
		l.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", fallback).
			Msg("invalid integer in environment variable, using default")
		return fallback
	}
	l := log.WithComponent("config")
	l.Debug().
		Str("key", key).
		Int("value", i).
		Str("source", "environment").
		Msg("using environment override")
	return i
}
