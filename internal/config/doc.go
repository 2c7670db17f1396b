// Package config loads, normalizes, and validates tvrip's TOML
// configuration. Defaults live in defaults.go so a missing config file
// still yields a working setup.
package config
