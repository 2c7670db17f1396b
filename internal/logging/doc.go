// Package logging constructs slog loggers with the repository's console and
// JSON output formats, and provides the attribute helpers used across
// packages.
package logging
