// Package config loads the quay configuration file.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quay/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Missing or blank fields fall back to defaults individually
//
// # TOML Format
//
//	data_path = "~/quay/data.jsonc"   # empty: embedded sample dataset
//	renderer = "tea"                  # "tea" (Bubble Tea) or "tview"
//	poll_seconds = 2                  # dataset reload interval
//	log_file = "~/.local/state/quay/quay.log"
//	locale = "de"                     # BCP 47 tag for search and collation
//
//	[screens.users]
//	searchable = false
//	placeholder = "Search users..."
//	empty_message = "No users"
//
// Screen names are containers, bills and users. Command-line flags override
// the file; see cmd/quay.
//
// Load returns errors for unreadable files, TOML syntax errors, unknown
// renderers or screens, and malformed locales. A missing file is not an error.
package config
