// Package config loads gitpeek's optional TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gitpeek/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	theme = "Nightfox"          # Nightfox, Kanagawa or Slate
//	batch_factor = 4            # lines per batch = factor × terminal height
//	startup_timeout = "1s"      # wait for the first batch
//	tick = "250ms"              # stream poll interval
//	syntax = true               # colour diff lines
//	log_dir = ".logs"           # where runlog.log goes when tracing
//
// Every field is optional. Durations use Go syntax and must be positive.
// log_dir gets tilde expansion and is made absolute.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML and out-of-range
// values. A missing file is not an error. Theme names are not validated
// here; the UI falls back to its default theme.
package config
