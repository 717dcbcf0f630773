// Package config provides session configuration for the property browser.
//
// Configuration is assembled from three sources, later ones overriding
// earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A configuration file, TOML (.toml) or YAML (.yaml, .yml)
//  3. Environment variables with the PROPBROWSER_ prefix
//
// Example TOML file:
//
//	[logging]
//	level = "debug"
//
//	[tree]
//	indentation = 4
//	alternatingRowColors = false
//	splitterPosition = 30
//
// Sub-packages:
//
//   - loader: file and environment loading into generic maps
//   - watcher: fsnotify based change detection for live reload
package config
