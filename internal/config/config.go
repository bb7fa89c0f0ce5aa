// Package config holds the handful of environment-driven knobs that sit
// outside the language itself: whether diagnostics should be colorized,
// and how deep a call stack the interpreter will tolerate before
// reporting a runtime error instead of risking a Go stack overflow.
package config

import "github.com/caarlos0/env/v6"

// Config is parsed once at process startup with env.Parse.
type Config struct {
	// NoColor disables colorized diagnostics even when stdout/stderr are
	// a TTY. Set LOX_NO_COLOR=1 to force plain output (useful for golden
	// file tests and CI logs).
	NoColor bool `env:"LOX_NO_COLOR" envDefault:"false"`

	// MaxCallDepth bounds the depth of nested Lox function calls. Zero or
	// negative disables the guard.
	MaxCallDepth int `env:"LOX_MAX_CALL_DEPTH" envDefault:"255"`
}

// Load reads Config from the process environment, falling back to the
// struct tag defaults for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
