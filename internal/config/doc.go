// Package config loads richdoc configuration.
//
// # Sources
//
// Configuration is read from a TOML file and then overridden by environment
// variables carrying the RICHDOC_ prefix. A missing file is not an error: the
// defaults returned by Default apply.
//
//	[document]
//	read_only = false
//
//	[history]
//	max_entries = 1000
//	deferred_selection = false
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[[schema.components]]
//	name = "paragraph"
//	type = "block"
//
//	[[schema.formatters]]
//	name = "bold"
//
// # Schema
//
// The schema section declares the component definitions, formatters and
// attributes that documents loaded by the command line tool may reference.
package config
