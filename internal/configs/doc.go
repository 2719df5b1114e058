// Package configs manages rolodex configuration.
//
// Configuration is stored in TOML format, by default at
// $XDG_CONFIG_HOME/rolodex/config.toml:
//
//	[storage]
//	data_file = "~/.local/share/rolodex/contacts.rolodex"
//	format = "json"
//
//	[keys]
//	key_file = "~/.config/rolodex/key.toml"
//
//	[backup]
//	dir = "~/.local/share/rolodex/backups"
//	keep = 10
//
//	[log]
//	file = "~/.local/share/rolodex/rolodex.log"
//	audit_file = "~/.local/share/rolodex/audit.jsonl"
//
// A missing file means every default applies. Keys absent from the file
// keep their defaults, so a config may set just the values it changes.
//
// # Settings
//
// DefaultSettings resolves the config and data directories the defaults
// are derived from. Tests build a Settings pointing at a temp directory.
package configs
