// Package config loads and validates the TOML configuration for knarchief.
//
// Resolution order: an explicit --config path, then
// ~/.config/knarchief/config.toml, then ./knarchief.toml. Missing files fall
// back to defaults so the CLI works out of the box.
package config
