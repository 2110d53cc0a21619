// Package logging constructs the slog loggers used across knarchief.
//
// Two formats are supported: "console" (human-oriented single-line output)
// and "json". Components attach themselves with logger.With("component", ...).
package logging
